package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OnSubmissionCompleted credits a completed submission to its owner's ledger:
// points, study minutes, level, daily activity, streak, template usage and
// achievements. Each submission is credited at most once; repeated calls
// return the original credit marked Duplicate.
func (u *gamificationUsecase) OnSubmissionCompleted(ctx context.Context, submissionID uuid.UUID) (*LedgerCredit, error) {
	db := u.cfg.DB.WithContext(ctx)

	// owner is needed up front to pick the lock
	sub, err := u.cfg.Submissions.FindByID(db, submissionID)
	if err != nil {
		return nil, notFound(err, "submission")
	}

	// user first, then template; both before any connection is held
	unlockUser := u.cfg.Locks.Lock(userLockKey(sub.UserID))
	defer unlockUser()
	if sub.PromptTemplateID != nil {
		unlockTemplate := u.cfg.Locks.Lock(templateLockKey(*sub.PromptTemplateID))
		defer unlockTemplate()
	}

	var credit *LedgerCredit
	err = dbretry.Do(ctx, u.cfg.Retry, func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			c, err := u.credit(tx, submissionID)
			if err != nil {
				return err
			}
			credit = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"submission_id": credit.SubmissionID,
		"user_id":       credit.UserID,
	}
	if credit.Duplicate {
		u.log().WithFields(fields).Debug("submission already credited")
		return credit, nil
	}

	fields["points"] = credit.Points
	fields["minutes"] = credit.Minutes
	fields["level"] = credit.Level
	fields["streak"] = credit.CurrentStreak
	fields["awarded"] = len(credit.Awarded)
	u.log().WithFields(fields).Info("submission credited")
	return credit, nil
}

func (u *gamificationUsecase) credit(tx *gorm.DB, submissionID uuid.UUID) (*LedgerCredit, error) {
	sub, err := u.cfg.Submissions.LockByID(tx, submissionID)
	if err != nil {
		return nil, notFound(err, "submission")
	}
	if entity.SubmissionStatus(sub.Status) != entity.StatusCompleted {
		return nil, fmt.Errorf("credit submission in status %s: %w", sub.Status, ErrInvalidTransition)
	}

	result := &LedgerCredit{SubmissionID: sub.ID, UserID: sub.UserID}
	if sub.CreditedAt != nil {
		result.Duplicate = true
		result.Points = sub.PointsAwarded
		return result, nil
	}

	if _, err := u.cfg.Progress.FindProfile(tx, sub.UserID); err != nil {
		return nil, notFound(err, "profile")
	}

	if err := u.cfg.Progress.EnsureProgress(tx, sub.UserID); err != nil {
		return nil, fmt.Errorf("ensure progress: %w", err)
	}
	progress, err := u.cfg.Progress.LockProgress(tx, sub.UserID)
	if err != nil {
		return nil, fmt.Errorf("lock progress: %w", err)
	}

	now := u.today()
	today := dateKey(now)
	points := SubmissionPoints(sub.Difficulty, sub.Rating)
	minutes := MinutesFromProcessing(sub.ProcessingTimeMs)

	progress.ProblemsSolved++
	progress.StudyMinutes += minutes
	progress.TotalPoints += points
	progress.ExperiencePoints += points
	progress.Level = LevelForExperience(progress.ExperiencePoints)
	progress.LastActivityDate = today
	if sub.Subject != "" && !slices.Contains(progress.SubjectsStudied, sub.Subject) {
		progress.SubjectsStudied = append(progress.SubjectsStudied, sub.Subject)
	}

	if _, err := u.cfg.Progress.RecordDailyActivity(tx, sub.UserID, today, points, minutes); err != nil {
		return nil, fmt.Errorf("record daily activity: %w", err)
	}

	streak, err := u.streakFromLog(tx, sub.UserID, now)
	if err != nil {
		return nil, err
	}
	progress.CurrentStreak = streak
	progress.LongestStreak = max(progress.LongestStreak, streak)

	creditedAt := u.cfg.Now()
	sub.PointsAwarded = points
	sub.CreditedAt = &creditedAt
	if err := u.cfg.Submissions.Save(tx, sub); err != nil {
		return nil, fmt.Errorf("mark submission credited: %w", err)
	}

	if sub.PromptTemplateID != nil {
		if err := u.recordTemplateUse(tx, *sub.PromptTemplateID); err != nil {
			return nil, err
		}
	}

	awarded, err := u.awardAchievements(tx, progress, creditedAt)
	if err != nil {
		return nil, err
	}

	if err := u.cfg.Progress.SaveProgress(tx, progress); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	result.Points = points
	result.Minutes = minutes
	result.Level = progress.Level
	result.CurrentStreak = progress.CurrentStreak
	result.Awarded = awarded
	return result, nil
}

// recordTemplateUse bumps usage and refreshes the average rating. Caller holds
// the template's keyed lock.
func (u *gamificationUsecase) recordTemplateUse(tx *gorm.DB, templateID uuid.UUID) error {
	if _, err := u.cfg.Catalog.LockTemplateByID(tx, templateID); err != nil {
		return notFound(err, "prompt template")
	}
	if err := u.cfg.Catalog.IncrementTemplateUsage(tx, templateID); err != nil {
		return fmt.Errorf("increment template usage: %w", err)
	}

	outcomes, err := u.cfg.Submissions.TemplateOutcomes(tx, templateID)
	if err != nil {
		return fmt.Errorf("template outcomes: %w", err)
	}
	if err := u.cfg.Catalog.UpdateTemplateStats(tx, templateID, TemplateStatsFrom(outcomes)); err != nil {
		return fmt.Errorf("update template stats: %w", err)
	}
	return nil
}
