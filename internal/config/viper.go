package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	// DATABASE_PASSWORD overrides database.password, etc.
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	SetDefaults(config)

	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	return config
}

func SetDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "learnquest-be")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.prefork", false)
	config.SetDefault("api.internal_key", "")
	config.SetDefault("api.read_timeout", "15s")
	config.SetDefault("api.write_timeout", "90s")

	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")

	config.SetDefault("database.driver", "postgres")
	config.SetDefault("database.sslmode", "disable")
	config.SetDefault("database.timezone", "UTC")
	config.SetDefault("database.path", "learnquest.db")
	config.SetDefault("database.seed", true)

	config.SetDefault("engine.timezone", "UTC")
	config.SetDefault("engine.streak_window_days", 365)
	config.SetDefault("engine.retry.max_attempts", 3)
	config.SetDefault("engine.retry.base_delay", "50ms")

	config.SetDefault("solver.provider", "openai")
	config.SetDefault("solver.timeout", "60s")
	config.SetDefault("solver.retry.max_attempts", 3)
	config.SetDefault("solver.retry.base_delay", "1s")
	config.SetDefault("solver.retry.max_delay", "10s")
}
