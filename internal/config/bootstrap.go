package config

import (
	"context"
	"fmt"
	"time"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/handler"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/route"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/usecase"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/evandrarf/learnquest-be/internal/pkg/keylock"
	"github.com/evandrarf/learnquest-be/internal/pkg/llm"
	"github.com/evandrarf/learnquest-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

func Bootstrap(ctx context.Context, config *BootstrapConfig) error {
	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	location, err := time.LoadLocation(config.Config.GetString("engine.timezone"))
	if err != nil {
		return fmt.Errorf("engine.timezone: %w", err)
	}

	retry := dbretry.DefaultConfig()
	if n := config.Config.GetInt("engine.retry.max_attempts"); n > 0 {
		retry.MaxAttempts = n
	}
	if d := config.Config.GetDuration("engine.retry.base_delay"); d > 0 {
		retry.BaseDelay = d
	}

	solver, err := llm.NewSolver(ctx, config.Config, config.Log)
	if err != nil {
		return fmt.Errorf("solver: %w", err)
	}

	// Repositories
	catalogRepo := repository.NewCatalogRepository(config.DB)
	submissionRepo := repository.NewSubmissionRepository(config.DB)
	progressRepo := repository.NewProgressRepository(config.DB)
	achievementRepo := repository.NewAchievementRepository(config.DB)

	// Usecases
	catalogUsecase := usecase.NewCatalogUsecase(usecase.CatalogConfig{
		DB:         config.DB,
		Repository: catalogRepo,
		Log:        config.Log,
	})
	gamificationUsecase := usecase.NewGamificationUsecase(usecase.GamificationConfig{
		DB:               config.DB,
		Progress:         progressRepo,
		Submissions:      submissionRepo,
		Catalog:          catalogRepo,
		Achievements:     achievementRepo,
		Log:              config.Log,
		Locks:            keylock.New(),
		Retry:            retry,
		Location:         location,
		StreakWindowDays: config.Config.GetInt("engine.streak_window_days"),
	})
	submissionUsecase := usecase.NewSubmissionUsecase(usecase.SubmissionConfig{
		DB:           config.DB,
		Repository:   submissionRepo,
		CatalogRepo:  catalogRepo,
		ProgressRepo: progressRepo,
		Catalog:      catalogUsecase,
		Gamification: gamificationUsecase,
		Solver:       solver,
		Log:          config.Log,
		SolveTimeout: config.Config.GetDuration("solver.timeout"),
		Retry:        retry,
	})

	// Handlers
	catalogHandler := handler.NewCatalogHandler(config.Validator, config.Log, catalogUsecase)
	submissionHandler := handler.NewSubmissionHandler(config.Validator, config.Log, submissionUsecase)
	progressHandler := handler.NewProgressHandler(config.Validator, config.Log, gamificationUsecase)

	route.Setup(&route.RouteConfig{
		Api:               config.Api,
		Middleware:        mid,
		CatalogHandler:    catalogHandler,
		SubmissionHandler: submissionHandler,
		ProgressHandler:   progressHandler,
	})

	return nil
}
