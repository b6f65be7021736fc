package database

import (
	"github.com/evandrarf/learnquest-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Subject{},
		&entity.PromptTemplate{},
		&entity.Profile{},
		&entity.Submission{},
		&entity.UserProgress{},
		&entity.DailyActivity{},
		&entity.Achievement{},
		&entity.UserAchievement{},
	)
	return err
}
