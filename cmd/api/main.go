package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evandrarf/learnquest-be/database"
	"github.com/evandrarf/learnquest-be/internal/config"
	"github.com/evandrarf/learnquest-be/internal/pkg/validate"
)

func main() {
	viperConfig := config.NewViper()

	log := config.NewLogger(viperConfig)
	db := database.New(viperConfig)
	validator := validate.NewValidator()
	api := config.NewAPI(viperConfig, log)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Migrations completed successfully")

	// Run seeders
	if viperConfig.GetBool("database.seed") {
		if err := database.Seed(db, log); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Info("Seeders completed successfully")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	defer stop()

	if err := config.Bootstrap(ctx, &config.BootstrapConfig{
		Config:    viperConfig,
		Log:       log,
		Api:       api,
		Validator: validator,
		DB:        db,
	}); err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	listenAddr := viperConfig.GetString("api.listen")

	go func() {
		if err := api.Listen(listenAddr); err != nil {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := api.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("API shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
