package usecase

import (
	"math"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
)

const (
	pointsEasy      = 10
	pointsMedium    = 20
	pointsHard      = 30
	pointsUnknown   = 15
	highRatingBonus = 5
	highRatingFloor = 4

	experiencePerLevelUnit = 100
)

// BasePoints returns the points a completed submission earns for its difficulty.
func BasePoints(difficulty string) int {
	switch entity.Difficulty(difficulty) {
	case entity.DifficultyEasy:
		return pointsEasy
	case entity.DifficultyMedium:
		return pointsMedium
	case entity.DifficultyHard:
		return pointsHard
	default:
		return pointsUnknown
	}
}

// SubmissionPoints adds the high-rating bonus when the rating known at
// completion time is 4 or more.
func SubmissionPoints(difficulty string, rating *int) int {
	points := BasePoints(difficulty)
	if rating != nil && *rating >= highRatingFloor {
		points += highRatingBonus
	}
	return points
}

// LevelForExperience is floor(sqrt(xp/100)) + 1.
func LevelForExperience(xp int) int {
	if xp <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(xp)/experiencePerLevelUnit))) + 1
}

// ExperienceForLevel is the minimum experience at which level is reached.
func ExperienceForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * experiencePerLevelUnit
}

// MinutesFromProcessing converts solver time to whole study minutes.
func MinutesFromProcessing(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int(ms / 60000)
}
