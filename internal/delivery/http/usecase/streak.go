package usecase

import "time"

const dateLayout = "2006-01-02"

const defaultStreakWindowDays = 365

func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// ComputeStreak walks back day by day from today and counts consecutive days
// found in active. Today may be missing without breaking the streak, so a
// learner who has not studied yet today keeps yesterday's run. maxDays bounds
// the walk.
func ComputeStreak(today time.Time, active map[string]bool, maxDays int) int {
	if maxDays <= 0 {
		maxDays = defaultStreakWindowDays
	}

	streak := 0
	for i := 0; i < maxDays; i++ {
		day := dateKey(today.AddDate(0, 0, -i))
		if active[day] {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}
