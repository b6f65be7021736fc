package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const fiveStars = 5

// CheckAndAward evaluates every active achievement against the user's ledger
// and unlocks the ones whose criteria now hold. Returns the newly unlocked ids.
func (u *gamificationUsecase) CheckAndAward(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := u.cfg.DB.WithContext(ctx)

	unlock := u.cfg.Locks.Lock(userLockKey(userID))
	defer unlock()

	var awarded []uuid.UUID
	err := dbretry.Do(ctx, u.cfg.Retry, func() error {
		return db.Transaction(func(tx *gorm.DB) error {
			if _, err := u.cfg.Progress.FindProfile(tx, userID); err != nil {
				return notFound(err, "profile")
			}
			if err := u.cfg.Progress.EnsureProgress(tx, userID); err != nil {
				return fmt.Errorf("ensure progress: %w", err)
			}
			progress, err := u.cfg.Progress.LockProgress(tx, userID)
			if err != nil {
				return fmt.Errorf("lock progress: %w", err)
			}

			ids, err := u.awardAchievements(tx, progress, u.cfg.Now())
			if err != nil {
				return err
			}
			if len(ids) > 0 {
				if err := u.cfg.Progress.SaveProgress(tx, progress); err != nil {
					return fmt.Errorf("save progress: %w", err)
				}
			}
			awarded = ids
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

// awardAchievements unlocks achievements for progress, which must be locked by
// the caller. Criteria are checked against one snapshot taken before any
// unlock, so points from an achievement never unlock another in the same pass.
// progress is updated in memory; the caller saves it.
func (u *gamificationUsecase) awardAchievements(tx *gorm.DB, progress *internalEntity.UserProgress, now time.Time) ([]uuid.UUID, error) {
	achievements, err := u.cfg.Achievements.FindAchievements(tx, true)
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	if len(achievements) == 0 {
		return nil, nil
	}

	completed, err := u.cfg.Achievements.CompletedAchievementIDs(tx, progress.UserID)
	if err != nil {
		return nil, fmt.Errorf("load unlocked achievements: %w", err)
	}

	snap := &snapshotLoader{
		tx:       tx,
		u:        u,
		progress: progress,
		base: ProgressSnapshot{
			ProblemsSolved:   progress.ProblemsSolved,
			CurrentStreak:    progress.CurrentStreak,
			LongestStreak:    progress.LongestStreak,
			Level:            progress.Level,
			TotalPoints:      progress.TotalPoints,
			ExperiencePoints: progress.ExperiencePoints,
			StudyMinutes:     progress.StudyMinutes,
			DistinctSubjects: len(progress.SubjectsStudied),
		},
	}

	var awarded []uuid.UUID
	for i := range achievements {
		a := &achievements[i]
		if completed[a.ID] {
			continue
		}

		criteria, err := ParseCriteria(a.Criteria)
		if err != nil {
			u.log().WithFields(logrus.Fields{"achievement": a.Name}).WithError(err).Warn("achievement criteria unreadable")
			continue
		}
		if len(criteria.Conditions) == 0 {
			u.log().WithFields(logrus.Fields{
				"achievement": a.Name,
				"unknown":     criteria.Unknown,
			}).Warn("achievement has no recognized criteria")
			continue
		}

		s, err := snap.load(criteria)
		if err != nil {
			return nil, err
		}
		if !criteria.Satisfied(s) {
			continue
		}

		if err := u.unlock(tx, progress.UserID, a, now); err != nil {
			return nil, err
		}
		progress.TotalPoints += a.Points
		progress.ExperiencePoints += a.Points
		progress.Level = LevelForExperience(progress.ExperiencePoints)
		awarded = append(awarded, a.ID)

		u.log().WithFields(logrus.Fields{
			"user_id":     progress.UserID,
			"achievement": a.Name,
			"points":      a.Points,
		}).Info("achievement unlocked")
	}
	return awarded, nil
}

func (u *gamificationUsecase) unlock(tx *gorm.DB, userID uuid.UUID, a *internalEntity.Achievement, now time.Time) error {
	row, err := u.cfg.Achievements.FindUserAchievement(tx, userID, a.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = &internalEntity.UserAchievement{UserID: userID, AchievementID: a.ID}
	} else if err != nil {
		return fmt.Errorf("find user achievement: %w", err)
	}

	unlockedAt := now
	row.IsCompleted = true
	row.UnlockedAt = &unlockedAt
	row.PointsEarned = a.Points
	if err := u.cfg.Achievements.SaveUserAchievement(tx, row); err != nil {
		return fmt.Errorf("save user achievement: %w", err)
	}
	return nil
}

// snapshotLoader fills in the aggregates that need their own query, and only
// when some criteria asks for them.
type snapshotLoader struct {
	tx       *gorm.DB
	u        *gamificationUsecase
	progress *internalEntity.UserProgress
	base     ProgressSnapshot

	fiveStarLoaded bool
	maxDayLoaded   bool
}

func (l *snapshotLoader) load(c Criteria) (ProgressSnapshot, error) {
	if c.Needs(ConditionFiveStarRatings) && !l.fiveStarLoaded {
		n, err := l.u.cfg.Submissions.CountRatedByUser(l.tx, l.progress.UserID, fiveStars)
		if err != nil {
			return l.base, fmt.Errorf("count five star ratings: %w", err)
		}
		l.base.FiveStarRatings = int(n)
		l.fiveStarLoaded = true
	}
	if c.Needs(ConditionMaxProblemsInOneDay) && !l.maxDayLoaded {
		n, err := l.u.cfg.Progress.MaxProblemsInOneDay(l.tx, l.progress.UserID)
		if err != nil {
			return l.base, fmt.Errorf("max problems in one day: %w", err)
		}
		l.base.MaxProblemsInOneDay = n
		l.maxDayLoaded = true
	}
	return l.base, nil
}
