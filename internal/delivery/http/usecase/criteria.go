package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// ConditionKind names one measurable statistic an achievement can require.
type ConditionKind string

const (
	ConditionProblemsSolved      ConditionKind = "problems_solved"
	ConditionCurrentStreak       ConditionKind = "current_streak"
	ConditionLongestStreak       ConditionKind = "longest_streak"
	ConditionLevel               ConditionKind = "level"
	ConditionTotalPoints         ConditionKind = "total_points"
	ConditionExperiencePoints    ConditionKind = "experience_points"
	ConditionStudyMinutes        ConditionKind = "study_minutes"
	ConditionDistinctSubjects    ConditionKind = "distinct_subjects"
	ConditionFiveStarRatings     ConditionKind = "five_star_ratings"
	ConditionMaxProblemsInOneDay ConditionKind = "max_problems_in_one_day"
)

var knownConditions = map[ConditionKind]bool{
	ConditionProblemsSolved:      true,
	ConditionCurrentStreak:       true,
	ConditionLongestStreak:       true,
	ConditionLevel:               true,
	ConditionTotalPoints:         true,
	ConditionExperiencePoints:    true,
	ConditionStudyMinutes:        true,
	ConditionDistinctSubjects:    true,
	ConditionFiveStarRatings:     true,
	ConditionMaxProblemsInOneDay: true,
}

// Condition holds when the snapshot value for Kind is at least Threshold.
type Condition struct {
	Kind      ConditionKind
	Threshold int
}

// Criteria is the decoded form of an achievement's criteria column.
type Criteria struct {
	Conditions []Condition
	Unknown    []string
}

// ProgressSnapshot is what criteria are evaluated against: the ledger row plus
// aggregates derived from submissions and the daily log.
type ProgressSnapshot struct {
	ProblemsSolved      int
	CurrentStreak       int
	LongestStreak       int
	Level               int
	TotalPoints         int
	ExperiencePoints    int
	StudyMinutes        int
	DistinctSubjects    int
	FiveStarRatings     int
	MaxProblemsInOneDay int
}

func (s ProgressSnapshot) value(kind ConditionKind) int {
	switch kind {
	case ConditionProblemsSolved:
		return s.ProblemsSolved
	case ConditionCurrentStreak:
		return s.CurrentStreak
	case ConditionLongestStreak:
		return s.LongestStreak
	case ConditionLevel:
		return s.Level
	case ConditionTotalPoints:
		return s.TotalPoints
	case ConditionExperiencePoints:
		return s.ExperiencePoints
	case ConditionStudyMinutes:
		return s.StudyMinutes
	case ConditionDistinctSubjects:
		return s.DistinctSubjects
	case ConditionFiveStarRatings:
		return s.FiveStarRatings
	case ConditionMaxProblemsInOneDay:
		return s.MaxProblemsInOneDay
	default:
		return 0
	}
}

// ParseCriteria decodes a {"kind": threshold} object. Unrecognized keys are
// collected in Unknown and otherwise ignored. Fractional thresholds round up.
func ParseCriteria(raw []byte) (Criteria, error) {
	var c Criteria
	if len(raw) == 0 {
		return c, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return c, fmt.Errorf("criteria is not an object: %w", err)
	}

	for key, val := range fields {
		kind := ConditionKind(key)
		if !knownConditions[kind] {
			c.Unknown = append(c.Unknown, key)
			continue
		}

		var threshold float64
		if err := json.Unmarshal(val, &threshold); err != nil {
			return Criteria{}, fmt.Errorf("criteria %q threshold is not a number: %w", key, err)
		}
		c.Conditions = append(c.Conditions, Condition{
			Kind:      kind,
			Threshold: int(math.Ceil(threshold)),
		})
	}

	sort.Slice(c.Conditions, func(i, j int) bool { return c.Conditions[i].Kind < c.Conditions[j].Kind })
	sort.Strings(c.Unknown)
	return c, nil
}

// Satisfied requires every condition to hold. Criteria with no recognized
// conditions never unlock.
func (c Criteria) Satisfied(s ProgressSnapshot) bool {
	if len(c.Conditions) == 0 {
		return false
	}
	for _, cond := range c.Conditions {
		if s.value(cond.Kind) < cond.Threshold {
			return false
		}
	}
	return true
}

// Needs reports whether any condition depends on kind, so callers can skip
// loading aggregates nobody asks for.
func (c Criteria) Needs(kind ConditionKind) bool {
	for _, cond := range c.Conditions {
		if cond.Kind == kind {
			return true
		}
	}
	return false
}
