package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewSolver builds the configured solver wrapped with retry. It returns nil
// without error when no API key is configured; solving is then disabled.
func NewSolver(ctx context.Context, config *viper.Viper, log *logrus.Logger) (Solver, error) {
	provider := config.GetString("solver.provider")

	var (
		solver Solver
		apiKey string
	)

	switch provider {
	case "openai", "":
		apiKey = config.GetString("solver.openai.api_key")
		if apiKey == "" {
			break
		}
		solver = NewOpenAIClient(apiKey, config.GetString("solver.openai.model"), config.GetString("solver.openai.base_url"))
	case "gemini":
		apiKey = config.GetString("solver.gemini.api_key")
		if apiKey == "" {
			break
		}
		client, err := NewGeminiClient(ctx, apiKey, config.GetString("solver.gemini.model"))
		if err != nil {
			return nil, err
		}
		solver = client
	default:
		return nil, fmt.Errorf("unknown solver provider %q", provider)
	}

	if solver == nil {
		log.WithField("provider", provider).Warn("solver API key not set, solving disabled")
		return nil, nil
	}

	log.WithFields(logrus.Fields{
		"provider": provider,
		"model":    solver.ModelID(),
	}).Info("solver ready")

	return WithRetry(solver, RetryConfig{
		MaxAttempts: config.GetInt("solver.retry.max_attempts"),
		BaseDelay:   config.GetDuration("solver.retry.base_delay"),
		MaxDelay:    config.GetDuration("solver.retry.max_delay"),
	}, log), nil
}
