package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	ratingWeight  = 0.6
	successWeight = 0.4
)

// EffectivenessScore blends the average rating (0-5) with the success rate
// (0-100, scaled down to 0-5) and rounds to two decimals.
func EffectivenessScore(averageRating, successRate float64) float64 {
	return round2(ratingWeight*averageRating + successWeight*(successRate/20))
}

// TemplateStatsFrom turns raw outcome counts into stored statistics.
func TemplateStatsFrom(o repository.TemplateOutcomes) repository.TemplateStats {
	avg := averageOf(o.AverageRating)

	var success float64
	if o.Total > 0 {
		success = float64(o.Completed) / float64(o.Total) * 100
	}

	return repository.TemplateStats{
		AverageRating:      round2(avg),
		SuccessRate:        round2(success),
		EffectivenessScore: EffectivenessScore(avg, success),
	}
}

// OnSubmissionRated recomputes the referenced template's statistics over all
// its submissions. A submission without a template is a no-op.
func (u *gamificationUsecase) OnSubmissionRated(ctx context.Context, submissionID uuid.UUID) (*repository.TemplateStats, error) {
	db := u.cfg.DB.WithContext(ctx)

	sub, err := u.cfg.Submissions.FindByID(db, submissionID)
	if err != nil {
		return nil, notFound(err, "submission")
	}
	if sub.PromptTemplateID == nil {
		return nil, nil
	}
	templateID := *sub.PromptTemplateID

	unlock := u.cfg.Locks.Lock(templateLockKey(templateID))
	defer unlock()

	var stats repository.TemplateStats
	err = dbretry.Do(ctx, u.cfg.Retry, func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			if _, err := u.cfg.Catalog.LockTemplateByID(tx, templateID); err != nil {
				return notFound(err, "prompt template")
			}

			outcomes, err := u.cfg.Submissions.TemplateOutcomes(tx, templateID)
			if err != nil {
				return fmt.Errorf("template outcomes: %w", err)
			}

			stats = TemplateStatsFrom(outcomes)
			if err := u.cfg.Catalog.UpdateTemplateStats(tx, templateID, stats); err != nil {
				return fmt.Errorf("update template stats: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	u.log().WithFields(logrus.Fields{
		"template_id":   templateID,
		"avg_rating":    stats.AverageRating,
		"success_rate":  stats.SuccessRate,
		"effectiveness": stats.EffectivenessScore,
	}).Debug("template statistics refreshed")

	return &stats, nil
}

func averageOf(avg *float64) float64 {
	if avg == nil {
		return 0
	}
	return *avg
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
