package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Achievement - Milestone dengan kriteria unlock deklaratif
type Achievement struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:50;not null" json:"category"` // progress, streak, mastery, exploration
	Rarity      string         `gorm:"size:20;not null" json:"rarity"`   // common, rare, epic, legendary
	Icon        string         `gorm:"size:50" json:"icon"`
	Criteria    datatypes.JSON `json:"criteria"` // {"problems_solved": 10, "current_streak": 3}
	Points      int            `gorm:"not null" json:"points"`
	IsActive    bool           `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (a *Achievement) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// UserAchievement - Achievement yang sudah didapat user, unik per pasangan
type UserAchievement struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	IsCompleted   bool         `gorm:"not null" json:"is_completed"`
	UnlockedAt    *time.Time   `json:"unlocked_at,omitempty"`
	PointsEarned  int          `gorm:"not null" json:"points_earned"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

func (u *UserAchievement) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
