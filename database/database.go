package database

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func New(config *viper.Viper) *gorm.DB {
	driver := config.GetString("database.driver")

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		// buat development lokal tanpa postgres
		path := config.GetString("database.path")
		if path == "" {
			path = "learnquest.db"
		}
		dialector = sqlite.Open(path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	case "postgres", "":
		dialector = postgres.Open(postgresDSN(config))
	default:
		panic(fmt.Errorf("unsupported database driver %q", driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		panic(fmt.Errorf("failed to connect database: %w", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Errorf("failed to get sql.DB: %w", err))
	}
	if driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if n := config.GetInt("database.max_open_conns"); n > 0 {
			sqlDB.SetMaxOpenConns(n)
		}
		if n := config.GetInt("database.max_idle_conns"); n > 0 {
			sqlDB.SetMaxIdleConns(n)
		}
		if d := config.GetDuration("database.conn_max_lifetime"); d > 0 {
			sqlDB.SetConnMaxLifetime(d)
		} else {
			sqlDB.SetConnMaxLifetime(30 * time.Minute)
		}
	}

	return db
}

func postgresDSN(config *viper.Viper) string {
	username := config.GetString("database.username")
	password := config.GetString("database.password")
	host := config.GetString("database.host")
	port := config.GetInt("database.port")
	dbname := config.GetString("database.dbname")
	sslmode := config.GetString("database.sslmode")
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := config.GetString("database.timezone")
	if timezone == "" {
		timezone = "UTC"
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		host,
		username,
		password,
		dbname,
		port,
		sslmode,
		timezone,
	)
}
