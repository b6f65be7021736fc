package entity

import "time"

type UpsertProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
	GradeLevel  string `json:"grade_level" validate:"omitempty,max=30"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	GradeLevel  string `json:"grade_level"`
}

type DailyActivityItem struct {
	Date           string `json:"date"`
	ProblemsSolved int    `json:"problems_solved"`
	PointsEarned   int    `json:"points_earned"`
	MinutesStudied int    `json:"minutes_studied"`
}

type ProgressResponse struct {
	UserID              string              `json:"user_id"`
	ProblemsSolved      int                 `json:"problems_solved"`
	StudyMinutes        int                 `json:"study_minutes"`
	CurrentStreak       int                 `json:"current_streak"`
	LongestStreak       int                 `json:"longest_streak"`
	TotalPoints         int                 `json:"total_points"`
	ExperiencePoints    int                 `json:"experience_points"`
	Level               int                 `json:"level"`
	NextLevelExperience int                 `json:"next_level_experience"`
	SubjectsStudied     []string            `json:"subjects_studied"`
	LastActivityDate    string              `json:"last_activity_date,omitempty"`
	RecentActivity      []DailyActivityItem `json:"recent_activity"`
}

type AchievementResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Rarity      string         `json:"rarity"`
	Icon        string         `json:"icon"`
	Criteria    map[string]int `json:"criteria"`
	Points      int            `json:"points"`
}

type UserAchievementResponse struct {
	Achievement  AchievementResponse `json:"achievement"`
	IsCompleted  bool                `json:"is_completed"`
	UnlockedAt   *time.Time          `json:"unlocked_at,omitempty"`
	PointsEarned int                 `json:"points_earned"`
}

type CheckAchievementsResponse struct {
	Awarded []string `json:"awarded"`
}
