package mapper

import (
	"encoding/json"
	"math"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/learnquest-be/internal/entity"
)

func ToProfileResponse(p *dbEntity.Profile) entity.ProfileResponse {
	return entity.ProfileResponse{
		ID:          p.ID.String(),
		DisplayName: p.DisplayName,
		GradeLevel:  p.GradeLevel,
	}
}

func ToProgressResponse(p *dbEntity.UserProgress, activity []dbEntity.DailyActivity) entity.ProgressResponse {
	res := entity.ProgressResponse{
		UserID:           p.UserID.String(),
		ProblemsSolved:   p.ProblemsSolved,
		StudyMinutes:     p.StudyMinutes,
		CurrentStreak:    p.CurrentStreak,
		LongestStreak:    p.LongestStreak,
		TotalPoints:      p.TotalPoints,
		ExperiencePoints: p.ExperiencePoints,
		Level:            p.Level,
		SubjectsStudied:  nonNil(p.SubjectsStudied),
		LastActivityDate: p.LastActivityDate,
		RecentActivity:   make([]entity.DailyActivityItem, 0, len(activity)),
	}
	for _, a := range activity {
		res.RecentActivity = append(res.RecentActivity, entity.DailyActivityItem{
			Date:           a.ActivityDate,
			ProblemsSolved: a.ProblemsSolved,
			PointsEarned:   a.PointsEarned,
			MinutesStudied: a.MinutesStudied,
		})
	}
	return res
}

func ToAchievementResponse(a *dbEntity.Achievement) entity.AchievementResponse {
	return entity.AchievementResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description,
		Category:    a.Category,
		Rarity:      a.Rarity,
		Icon:        a.Icon,
		Criteria:    criteriaMap(a.Criteria),
		Points:      a.Points,
	}
}

func ToUserAchievementResponse(ua *dbEntity.UserAchievement) entity.UserAchievementResponse {
	res := entity.UserAchievementResponse{
		IsCompleted:  ua.IsCompleted,
		UnlockedAt:   ua.UnlockedAt,
		PointsEarned: ua.PointsEarned,
	}
	if ua.Achievement != nil {
		res.Achievement = ToAchievementResponse(ua.Achievement)
	} else {
		res.Achievement = entity.AchievementResponse{ID: ua.AchievementID.String()}
	}
	return res
}

// criteriaMap - Tampilkan threshold numerik saja; key non-angka di-skip
func criteriaMap(raw []byte) map[string]int {
	out := map[string]int{}
	if len(raw) == 0 {
		return out
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out
	}
	for k, v := range fields {
		if f, ok := v.(float64); ok {
			out[k] = int(math.Ceil(f))
		}
	}
	return out
}
