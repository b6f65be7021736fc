package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// retrySolver retries transient failures with exponential backoff and jitter.
type retrySolver struct {
	inner  Solver
	config RetryConfig
	log    *logrus.Logger
}

func WithRetry(s Solver, cfg RetryConfig, log *logrus.Logger) Solver {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &retrySolver{inner: s, config: cfg, log: log}
}

func (r *retrySolver) ModelID() string {
	return r.inner.ModelID()
}

func (r *retrySolver) Solve(ctx context.Context, req SolveRequest) (*Solution, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		sol, err := r.inner.Solve(ctx, req)
		if err == nil {
			return sol, nil
		}
		lastErr = err

		if !shouldRetry(err, &invalidRetried) || attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.WithFields(logrus.Fields{
			"model":   r.inner.ModelID(),
			"attempt": attempt + 1,
			"wait":    wait.String(),
		}).WithError(err).Warn("solver call failed, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

func shouldRetry(err error, invalidRetried *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var bad *ErrBadRequest
	if errors.As(err, &bad) {
		return false
	}

	// invalid output dapat satu kali retry saja
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}

	return true
}

func (r *retrySolver) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := r.config.BaseDelay << attempt
	if r.config.MaxDelay > 0 && wait > r.config.MaxDelay {
		wait = r.config.MaxDelay
	}
	if wait <= 0 {
		return 0
	}

	// +-20% jitter
	jitter := time.Duration(float64(wait) * 0.2 * (2*rand.Float64() - 1))
	return wait + jitter
}
