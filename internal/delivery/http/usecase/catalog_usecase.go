package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/evandrarf/learnquest-be/internal/pkg/mapper"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
)

type CatalogUsecase interface {
	ListSubjects(ctx context.Context) ([]entity.SubjectResponse, error)
	ListTemplates(ctx context.Context, subject string, req entity.ListPromptsRequest) ([]entity.PromptTemplateResponse, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*internalEntity.PromptTemplate, error)
	CreateTemplate(ctx context.Context, req entity.CreatePromptTemplateRequest, createdBy string) (*entity.PromptTemplateResponse, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req entity.UpdatePromptTemplateRequest) (*entity.PromptTemplateResponse, error)
	SetTemplateActive(ctx context.Context, id uuid.UUID, active bool) error
	SelectPrompt(ctx context.Context, subject string, inputType entity.InputType, difficulty entity.Difficulty, gradeLevel string, keywords []string) (*internalEntity.PromptTemplate, error)
}

type CatalogConfig struct {
	DB         *gorm.DB
	Repository repository.CatalogRepository
	Log        *logrus.Logger
	// Shuffle randomizes tie order during selection; defaults to math/rand/v2.
	Shuffle func(n int, swap func(i, j int))
}

type catalogUsecase struct {
	cfg CatalogConfig
}

func NewCatalogUsecase(cfg CatalogConfig) CatalogUsecase {
	if cfg.Shuffle == nil {
		cfg.Shuffle = rand.Shuffle
	}
	return &catalogUsecase{cfg: cfg}
}

func (u *catalogUsecase) log() *logrus.Logger {
	if u.cfg.Log == nil {
		return logrus.StandardLogger()
	}
	return u.cfg.Log
}

func (u *catalogUsecase) ListSubjects(ctx context.Context) ([]entity.SubjectResponse, error) {
	subjects, err := u.cfg.Repository.FindSubjects(u.cfg.DB.WithContext(ctx), true)
	if err != nil {
		return nil, err
	}

	out := make([]entity.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, mapper.ToSubjectResponse(&subjects[i]))
	}
	return out, nil
}

func (u *catalogUsecase) ListTemplates(ctx context.Context, subject string, req entity.ListPromptsRequest) ([]entity.PromptTemplateResponse, error) {
	templates, err := u.cfg.Repository.FindTemplates(u.cfg.DB.WithContext(ctx), repository.TemplateFilter{
		Subject:    subject,
		Difficulty: req.Difficulty,
		InputType:  req.InputType,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}

	grade := strings.TrimSpace(req.GradeLevel)
	keyword := strings.TrimSpace(req.Keyword)

	out := make([]entity.PromptTemplateResponse, 0, len(templates))
	for i := range templates {
		t := &templates[i]
		if grade != "" && !containsFold(t.GradeLevels, grade) {
			continue
		}
		if keyword != "" && !containsFold(t.Keywords, keyword) {
			continue
		}
		out = append(out, mapper.ToPromptTemplateResponse(t))
	}
	return out, nil
}

func (u *catalogUsecase) GetTemplate(ctx context.Context, id uuid.UUID) (*internalEntity.PromptTemplate, error) {
	t, err := u.cfg.Repository.FindTemplateByID(u.cfg.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "prompt template")
	}
	return t, nil
}

func (u *catalogUsecase) CreateTemplate(ctx context.Context, req entity.CreatePromptTemplateRequest, createdBy string) (*entity.PromptTemplateResponse, error) {
	db := u.cfg.DB.WithContext(ctx)

	subject, err := u.cfg.Repository.FindSubjectByName(db, req.Subject)
	if err != nil {
		return nil, notFound(err, "subject")
	}

	t := &internalEntity.PromptTemplate{
		SubjectID:             subject.ID,
		Title:                 req.Title,
		TemplateText:          req.TemplateText,
		InputType:             req.InputType,
		Difficulty:            req.Difficulty,
		GradeLevels:           datatypes.JSONSlice[string](req.GradeLevels),
		Keywords:              datatypes.JSONSlice[string](normalizeKeywords(req.Keywords)),
		RequiresStepByStep:    req.RequiresStepByStep,
		IncludesExamples:      req.IncludesExamples,
		EncouragesExploration: req.EncouragesExploration,
		MaxTokens:             req.MaxTokens,
		Temperature:           req.Temperature,
		Version:               1,
		IsActive:              true,
		CreatedBy:             createdBy,
	}
	if t.MaxTokens == 0 {
		t.MaxTokens = defaultMaxTokens
	}
	if t.Temperature == 0 {
		t.Temperature = defaultTemperature
	}

	if err := u.cfg.Repository.CreateTemplate(db, t); err != nil {
		return nil, fmt.Errorf("create prompt template: %w", err)
	}

	u.log().WithFields(logrus.Fields{
		"template_id": t.ID,
		"subject":     subject.Name,
	}).Info("prompt template created")

	res := mapper.ToPromptTemplateResponse(t)
	return &res, nil
}

// UpdateTemplate edits content fields and bumps the version. Statistics are
// owned by the engine and are left alone.
func (u *catalogUsecase) UpdateTemplate(ctx context.Context, id uuid.UUID, req entity.UpdatePromptTemplateRequest) (*entity.PromptTemplateResponse, error) {
	var updated *internalEntity.PromptTemplate

	err := u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := u.cfg.Repository.LockTemplateByID(tx, id)
		if err != nil {
			return notFound(err, "prompt template")
		}

		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.TemplateText != nil {
			t.TemplateText = *req.TemplateText
		}
		if req.InputType != nil {
			t.InputType = *req.InputType
		}
		if req.Difficulty != nil {
			t.Difficulty = *req.Difficulty
		}
		if req.GradeLevels != nil {
			t.GradeLevels = datatypes.JSONSlice[string](*req.GradeLevels)
		}
		if req.Keywords != nil {
			t.Keywords = datatypes.JSONSlice[string](normalizeKeywords(*req.Keywords))
		}
		if req.RequiresStepByStep != nil {
			t.RequiresStepByStep = *req.RequiresStepByStep
		}
		if req.IncludesExamples != nil {
			t.IncludesExamples = *req.IncludesExamples
		}
		if req.EncouragesExploration != nil {
			t.EncouragesExploration = *req.EncouragesExploration
		}
		if req.MaxTokens != nil {
			t.MaxTokens = *req.MaxTokens
		}
		if req.Temperature != nil {
			t.Temperature = *req.Temperature
		}
		t.Version++

		if err := u.cfg.Repository.SaveTemplate(tx, t); err != nil {
			return fmt.Errorf("save prompt template: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := mapper.ToPromptTemplateResponse(updated)
	return &res, nil
}

// SetTemplateActive toggles availability. Templates are never deleted because
// submissions keep pointing at them.
func (u *catalogUsecase) SetTemplateActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := u.cfg.Repository.SetTemplateActive(u.cfg.DB.WithContext(ctx), id, active); err != nil {
		return notFound(err, "prompt template")
	}
	u.log().WithFields(logrus.Fields{"template_id": id, "active": active}).Info("prompt template availability changed")
	return nil
}

func normalizeKeywords(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
