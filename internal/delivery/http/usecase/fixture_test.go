package usecase

import (
	"testing"
	"time"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/evandrarf/learnquest-be/internal/pkg/keylock"
	"github.com/evandrarf/learnquest-be/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

type fixture struct {
	t     *testing.T
	db    *gorm.DB
	clock *clock

	catalogRepo  repository.CatalogRepository
	subRepo      repository.SubmissionRepository
	progressRepo repository.ProgressRepository
	achRepo      repository.AchievementRepository

	catalog      CatalogUsecase
	gamification GamificationUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := testutil.QuietLogger()

	f := &fixture{
		t:            t,
		db:           db,
		clock:        &clock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		catalogRepo:  repository.NewCatalogRepository(db),
		subRepo:      repository.NewSubmissionRepository(db),
		progressRepo: repository.NewProgressRepository(db),
		achRepo:      repository.NewAchievementRepository(db),
	}

	f.catalog = NewCatalogUsecase(CatalogConfig{
		DB:         db,
		Repository: f.catalogRepo,
		Log:        log,
	})
	f.gamification = NewGamificationUsecase(GamificationConfig{
		DB:           db,
		Progress:     f.progressRepo,
		Submissions:  f.subRepo,
		Catalog:      f.catalogRepo,
		Achievements: f.achRepo,
		Log:          log,
		Locks:        keylock.New(),
		Retry:        dbretry.Config{MaxAttempts: 1},
		Now:          f.clock.Now,
		Location:     time.UTC,
	})
	return f
}

func (f *fixture) profile() uuid.UUID {
	f.t.Helper()
	id := uuid.New()
	require.NoError(f.t, f.progressRepo.UpsertProfile(f.db, &internalEntity.Profile{ID: id, DisplayName: "learner", GradeLevel: "high"}))
	return id
}

func (f *fixture) subject(name string) *internalEntity.Subject {
	f.t.Helper()
	s := &internalEntity.Subject{
		Name:             name,
		GradeLevels:      datatypes.JSONSlice[string]{"middle", "high"},
		DifficultyLevels: datatypes.JSONSlice[string]{"easy", "medium", "hard"},
		IsActive:         true,
	}
	require.NoError(f.t, f.catalogRepo.CreateSubject(f.db, s))
	return s
}

func (f *fixture) template(subject *internalEntity.Subject, title string, mutate func(*internalEntity.PromptTemplate)) *internalEntity.PromptTemplate {
	f.t.Helper()
	tp := &internalEntity.PromptTemplate{
		SubjectID:    subject.ID,
		Title:        title,
		TemplateText: "Solve {{input}} for a {{grade_level}} student",
		InputType:    string(entity.InputTypeAny),
		Difficulty:   string(entity.DifficultyMedium),
		GradeLevels:  datatypes.JSONSlice[string]{"high"},
		Keywords:     datatypes.JSONSlice[string]{"algebra"},
		MaxTokens:    1000,
		Temperature:  0.3,
		IsActive:     true,
	}
	if mutate != nil {
		mutate(tp)
	}
	require.NoError(f.t, f.catalogRepo.CreateTemplate(f.db, tp))
	return tp
}

func (f *fixture) achievement(name string, criteria string, points int) *internalEntity.Achievement {
	f.t.Helper()
	a := &internalEntity.Achievement{
		Name:     name,
		Category: "progress",
		Rarity:   string(entity.RarityCommon),
		Criteria: datatypes.JSON(criteria),
		Points:   points,
		IsActive: true,
	}
	require.NoError(f.t, f.achRepo.CreateAchievement(f.db, a))
	return a
}

type subOpt func(*internalEntity.Submission)

func withRating(r int) subOpt {
	return func(s *internalEntity.Submission) { s.Rating = &r }
}

func withTemplate(id uuid.UUID) subOpt {
	return func(s *internalEntity.Submission) { s.PromptTemplateID = &id }
}

func withStatus(st entity.SubmissionStatus) subOpt {
	return func(s *internalEntity.Submission) { s.Status = string(st) }
}

func withSubject(name string) subOpt {
	return func(s *internalEntity.Submission) { s.Subject = name }
}

func withProcessing(ms int64) subOpt {
	return func(s *internalEntity.Submission) { s.ProcessingTimeMs = ms }
}

// submission inserts a completed submission unless an option says otherwise.
func (f *fixture) submission(userID uuid.UUID, difficulty entity.Difficulty, opts ...subOpt) *internalEntity.Submission {
	f.t.Helper()
	s := &internalEntity.Submission{
		UserID:     userID,
		Subject:    "Mathematics",
		Difficulty: string(difficulty),
		InputType:  string(entity.InputTypeText),
		InputText:  "2x + 3 = 11",
		Status:     string(entity.StatusCompleted),
	}
	for _, o := range opts {
		o(s)
	}
	require.NoError(f.t, f.subRepo.Create(f.db, s))
	return s
}

func (f *fixture) progress(userID uuid.UUID) *internalEntity.UserProgress {
	f.t.Helper()
	p, err := f.progressRepo.FindProgress(f.db, userID)
	require.NoError(f.t, err)
	return p
}
