package usecase

import "github.com/evandrarf/learnquest-be/internal/delivery/http/entity"

var transitions = map[entity.SubmissionStatus][]entity.SubmissionStatus{
	entity.StatusPending:    {entity.StatusProcessing},
	entity.StatusProcessing: {entity.StatusCompleted, entity.StatusError},
	entity.StatusCompleted:  {entity.StatusArchived},
}

// CanTransition reports whether a submission may move from one status to
// another. Error and archived are terminal.
func CanTransition(from, to entity.SubmissionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanRate reports whether a rating may be recorded in status s.
func CanRate(s entity.SubmissionStatus) bool {
	switch s {
	case entity.StatusPending, entity.StatusProcessing, entity.StatusCompleted:
		return true
	}
	return false
}
