package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile - Data user minimal; ID berasal dari identity provider
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"size:100" json:"display_name"`
	GradeLevel  string    `gorm:"size:30" json:"grade_level"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// UserProgress - Ledger agregat per user
type UserProgress struct {
	UserID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProblemsSolved   int                         `gorm:"not null" json:"problems_solved"`
	StudyMinutes     int                         `gorm:"not null" json:"study_minutes"`
	CurrentStreak    int                         `gorm:"not null" json:"current_streak"`
	LongestStreak    int                         `gorm:"not null" json:"longest_streak"`
	TotalPoints      int                         `gorm:"not null" json:"total_points"`
	ExperiencePoints int                         `gorm:"not null" json:"experience_points"`
	Level            int                         `gorm:"not null" json:"level"`
	SubjectsStudied  datatypes.JSONSlice[string] `json:"subjects_studied"`
	LastActivityDate string                      `gorm:"size:10" json:"last_activity_date"` // YYYY-MM-DD
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// DailyActivity - Log aktivitas harian, dipakai untuk streak
type DailyActivity struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_activity_user_date" json:"user_id"`
	ActivityDate   string    `gorm:"size:10;not null;uniqueIndex:idx_daily_activity_user_date" json:"activity_date"` // YYYY-MM-DD
	ProblemsSolved int       `gorm:"not null" json:"problems_solved"`
	PointsEarned   int       `gorm:"not null" json:"points_earned"`
	MinutesStudied int       `gorm:"not null" json:"minutes_studied"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DailyActivity) TableName() string {
	return "daily_activities"
}
