package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/evandrarf/learnquest-be/internal/pkg/keylock"
	"github.com/evandrarf/learnquest-be/internal/pkg/mapper"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentActivityDays = 14

type GamificationUsecase interface {
	OnSubmissionCompleted(ctx context.Context, submissionID uuid.UUID) (*LedgerCredit, error)
	OnSubmissionRated(ctx context.Context, submissionID uuid.UUID) (*repository.TemplateStats, error)
	CheckAndAward(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	GetProgress(ctx context.Context, userID uuid.UUID) (*entity.ProgressResponse, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req entity.UpsertProfileRequest) (*entity.ProfileResponse, error)
	ListAchievements(ctx context.Context) ([]entity.AchievementResponse, error)
	ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]entity.UserAchievementResponse, error)
}

type GamificationConfig struct {
	DB           *gorm.DB
	Progress     repository.ProgressRepository
	Submissions  repository.SubmissionRepository
	Catalog      repository.CatalogRepository
	Achievements repository.AchievementRepository
	Log          *logrus.Logger

	// Locks serializes writers per user and per template in this process.
	Locks *keylock.Locker
	Retry dbretry.Config

	Now              func() time.Time
	Location         *time.Location
	StreakWindowDays int
}

// LedgerCredit is what one completed submission contributed.
type LedgerCredit struct {
	SubmissionID  uuid.UUID
	UserID        uuid.UUID
	Points        int
	Minutes       int
	Level         int
	CurrentStreak int
	Awarded       []uuid.UUID
	// Duplicate is set when the submission had already been credited.
	Duplicate bool
}

type gamificationUsecase struct {
	cfg GamificationConfig
}

func NewGamificationUsecase(cfg GamificationConfig) GamificationUsecase {
	if cfg.Locks == nil {
		cfg.Locks = keylock.New()
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = dbretry.DefaultConfig()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.StreakWindowDays <= 0 {
		cfg.StreakWindowDays = defaultStreakWindowDays
	}
	return &gamificationUsecase{cfg: cfg}
}

func (u *gamificationUsecase) log() *logrus.Logger {
	if u.cfg.Log == nil {
		return logrus.StandardLogger()
	}
	return u.cfg.Log
}

func (u *gamificationUsecase) today() time.Time {
	return u.cfg.Now().In(u.cfg.Location)
}

func userLockKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func templateLockKey(id uuid.UUID) string {
	return "template:" + id.String()
}

// streakFromLog recomputes the current streak from the daily activity log.
func (u *gamificationUsecase) streakFromLog(db *gorm.DB, userID uuid.UUID, today time.Time) (int, error) {
	from := dateKey(today.AddDate(0, 0, -u.cfg.StreakWindowDays))
	dates, err := u.cfg.Progress.FindActiveDatesSince(db, userID, from)
	if err != nil {
		return 0, fmt.Errorf("load activity dates: %w", err)
	}

	active := make(map[string]bool, len(dates))
	for _, d := range dates {
		active[d] = true
	}
	return ComputeStreak(today, active, u.cfg.StreakWindowDays), nil
}

// GetProgress reads the ledger. The current streak is recomputed on read so a
// learner who stopped studying sees it drop without waiting for a new credit.
func (u *gamificationUsecase) GetProgress(ctx context.Context, userID uuid.UUID) (*entity.ProgressResponse, error) {
	db := u.cfg.DB.WithContext(ctx)

	if _, err := u.cfg.Progress.FindProfile(db, userID); err != nil {
		return nil, notFound(err, "profile")
	}

	progress, err := u.cfg.Progress.FindProgress(db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = &internalEntity.UserProgress{UserID: userID, Level: 1}
	} else if err != nil {
		return nil, fmt.Errorf("find progress: %w", err)
	}

	streak, err := u.streakFromLog(db, userID, u.today())
	if err != nil {
		return nil, err
	}
	progress.CurrentStreak = streak

	activity, err := u.cfg.Progress.FindRecentActivity(db, userID, recentActivityDays)
	if err != nil {
		return nil, fmt.Errorf("load recent activity: %w", err)
	}

	res := mapper.ToProgressResponse(progress, activity)
	res.NextLevelExperience = ExperienceForLevel(progress.Level + 1)
	return &res, nil
}

func (u *gamificationUsecase) UpsertProfile(ctx context.Context, userID uuid.UUID, req entity.UpsertProfileRequest) (*entity.ProfileResponse, error) {
	profile := &internalEntity.Profile{
		ID:          userID,
		DisplayName: req.DisplayName,
		GradeLevel:  req.GradeLevel,
	}
	if err := u.cfg.Progress.UpsertProfile(u.cfg.DB.WithContext(ctx), profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	res := mapper.ToProfileResponse(profile)
	return &res, nil
}

func (u *gamificationUsecase) ListAchievements(ctx context.Context) ([]entity.AchievementResponse, error) {
	achievements, err := u.cfg.Achievements.FindAchievements(u.cfg.DB.WithContext(ctx), true)
	if err != nil {
		return nil, err
	}

	out := make([]entity.AchievementResponse, 0, len(achievements))
	for i := range achievements {
		out = append(out, mapper.ToAchievementResponse(&achievements[i]))
	}
	return out, nil
}

func (u *gamificationUsecase) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]entity.UserAchievementResponse, error) {
	rows, err := u.cfg.Achievements.FindUserAchievements(u.cfg.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.UserAchievementResponse, 0, len(rows))
	for i := range rows {
		out = append(out, mapper.ToUserAchievementResponse(&rows[i]))
	}
	return out, nil
}
