package mapper

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/learnquest-be/internal/entity"
)

func ToSubjectResponse(s *dbEntity.Subject) entity.SubjectResponse {
	return entity.SubjectResponse{
		ID:               s.ID.String(),
		Name:             s.Name,
		Description:      s.Description,
		Icon:             s.Icon,
		GradeLevels:      nonNil(s.GradeLevels),
		DifficultyLevels: nonNil(s.DifficultyLevels),
		IsActive:         s.IsActive,
	}
}

func ToPromptTemplateResponse(t *dbEntity.PromptTemplate) entity.PromptTemplateResponse {
	return entity.PromptTemplateResponse{
		ID:                    t.ID.String(),
		SubjectID:             t.SubjectID.String(),
		Title:                 t.Title,
		TemplateText:          t.TemplateText,
		InputType:             t.InputType,
		Difficulty:            t.Difficulty,
		GradeLevels:           nonNil(t.GradeLevels),
		Keywords:              nonNil(t.Keywords),
		RequiresStepByStep:    t.RequiresStepByStep,
		IncludesExamples:      t.IncludesExamples,
		EncouragesExploration: t.EncouragesExploration,
		MaxTokens:             t.MaxTokens,
		Temperature:           t.Temperature,
		UsageCount:            t.UsageCount,
		AverageRating:         t.AverageRating,
		SuccessRate:           t.SuccessRate,
		EffectivenessScore:    t.EffectivenessScore,
		Version:               t.Version,
		IsActive:              t.IsActive,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
