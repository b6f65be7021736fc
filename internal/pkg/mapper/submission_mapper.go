package mapper

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/learnquest-be/internal/entity"
)

func ToSubmissionResponse(s *dbEntity.Submission) entity.SubmissionResponse {
	res := entity.SubmissionResponse{
		ID:               s.ID.String(),
		UserID:           s.UserID.String(),
		Subject:          s.Subject,
		Difficulty:       s.Difficulty,
		InputType:        s.InputType,
		GradeLevel:       s.GradeLevel,
		Tags:             nonNil(s.Tags),
		InputText:        s.InputText,
		InputURL:         s.InputURL,
		ResolvedPrompt:   s.ResolvedPrompt,
		Solution:         s.Solution,
		Explanation:      s.Explanation,
		Steps:            ToStepResponses(s.Steps),
		Confidence:       s.Confidence,
		AIModel:          s.AIModel,
		ProcessingTimeMs: s.ProcessingTimeMs,
		Status:           s.Status,
		ErrorMessage:     s.ErrorMessage,
		Rating:           s.Rating,
		Feedback:         s.Feedback,
		PointsAwarded:    s.PointsAwarded,
		CompletedAt:      s.CompletedAt,
		CreatedAt:        s.CreatedAt,
	}
	if s.PromptTemplateID != nil {
		res.PromptTemplateID = s.PromptTemplateID.String()
	}
	return res
}

func ToStepResponses(steps []dbEntity.SolutionStep) []entity.SolutionStep {
	out := make([]entity.SolutionStep, len(steps))
	for i, st := range steps {
		out[i] = entity.SolutionStep{Order: st.Order, Title: st.Title, Content: st.Content}
	}
	return out
}

// ToSolutionSteps - Normalisasi urutan step mulai dari 1 kalau kosong
func ToSolutionSteps(steps []entity.SolutionStep) []dbEntity.SolutionStep {
	out := make([]dbEntity.SolutionStep, len(steps))
	for i, st := range steps {
		order := st.Order
		if order <= 0 {
			order = i + 1
		}
		out[i] = dbEntity.SolutionStep{Order: order, Title: st.Title, Content: st.Content}
	}
	return out
}
