package usecase

import (
	"context"
	"testing"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPromptPrefersEffectiveness(t *testing.T) {
	f := newFixture(t)
	math := f.subject("Mathematics")
	strong := f.template(math, "Strong", func(p *internalEntity.PromptTemplate) {
		p.EffectivenessScore = 8.0
		p.UsageCount = 50
	})
	f.template(math, "Fresh", func(p *internalEntity.PromptTemplate) {
		p.EffectivenessScore = 6.0
		p.UsageCount = 5
	})

	got, err := f.catalog.SelectPrompt(context.Background(), "Mathematics", entity.InputTypeText, entity.DifficultyMedium, "high", nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, strong.ID, got.ID)
}

func TestSelectPromptHardFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	math := f.subject("Mathematics")
	f.subject("History")

	imageOnly := f.template(math, "Image", func(p *internalEntity.PromptTemplate) {
		p.InputType = string(entity.InputTypeImage)
	})
	inactive := f.template(math, "Inactive", func(p *internalEntity.PromptTemplate) {
		p.EffectivenessScore = 5
	})
	require.NoError(t, f.catalogRepo.SetTemplateActive(f.db, inactive.ID, false))

	got, err := f.catalog.SelectPrompt(ctx, "Mathematics", entity.InputTypeText, "", "", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.catalog.SelectPrompt(ctx, "Mathematics", entity.InputTypeImage, "", "", nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, imageOnly.ID, got.ID)

	got, err = f.catalog.SelectPrompt(ctx, "History", entity.InputTypeText, "", "", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSelectPromptSoftFiltersFallBack(t *testing.T) {
	f := newFixture(t)
	math := f.subject("Mathematics")
	medium := f.template(math, "Medium", nil)

	// nothing is hard or for college; the medium template still wins
	got, err := f.catalog.SelectPrompt(context.Background(), "Mathematics", entity.InputTypeText, entity.DifficultyHard, "college", []string{"calculus"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, medium.ID, got.ID)
}

func TestCreateAndUpdateTemplate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.subject("Physics")

	created, err := f.catalog.CreateTemplate(ctx, entity.CreatePromptTemplateRequest{
		Subject:      "Physics",
		Title:        "Kinematics",
		TemplateText: "Solve {{input}}",
		InputType:    "text",
		Difficulty:   "hard",
		Keywords:     []string{" Velocity ", "velocity", "Force"},
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, defaultMaxTokens, created.MaxTokens)
	assert.Equal(t, []string{"velocity", "force"}, created.Keywords)
	assert.True(t, created.IsActive)

	id := uuid.MustParse(created.ID)
	title := "Kinematics v2"
	updated, err := f.catalog.UpdateTemplate(ctx, id, entity.UpdatePromptTemplateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Kinematics v2", updated.Title)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "Solve {{input}}", updated.TemplateText)

	_, err = f.catalog.CreateTemplate(ctx, entity.CreatePromptTemplateRequest{Subject: "Alchemy", Title: "x", TemplateText: "x", InputType: "text", Difficulty: "easy"}, "admin")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.catalog.UpdateTemplate(ctx, uuid.New(), entity.UpdatePromptTemplateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTemplatesAndToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	math := f.subject("Mathematics")
	a := f.template(math, "Algebra", nil)
	f.template(math, "Geometry", func(p *internalEntity.PromptTemplate) {
		p.Keywords = []string{"triangle"}
		p.GradeLevels = []string{"middle"}
	})

	all, err := f.catalog.ListTemplates(ctx, "Mathematics", entity.ListPromptsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byKeyword, err := f.catalog.ListTemplates(ctx, "Mathematics", entity.ListPromptsRequest{Keyword: "Triangle"})
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "Geometry", byKeyword[0].Title)

	byGrade, err := f.catalog.ListTemplates(ctx, "Mathematics", entity.ListPromptsRequest{GradeLevel: "high"})
	require.NoError(t, err)
	require.Len(t, byGrade, 1)
	assert.Equal(t, "Algebra", byGrade[0].Title)

	require.NoError(t, f.catalog.SetTemplateActive(ctx, a.ID, false))
	active, err := f.catalog.ListTemplates(ctx, "Mathematics", entity.ListPromptsRequest{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Geometry", active[0].Title)

	assert.ErrorIs(t, f.catalog.SetTemplateActive(ctx, uuid.New(), true), ErrNotFound)

	subjects, err := f.catalog.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Mathematics", subjects[0].Name)
}
