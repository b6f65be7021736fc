package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/repository"
	internalEntity "github.com/evandrarf/learnquest-be/internal/entity"
	"github.com/evandrarf/learnquest-be/internal/pkg/dbretry"
	"github.com/evandrarf/learnquest-be/internal/pkg/llm"
	"github.com/evandrarf/learnquest-be/internal/pkg/mapper"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultPageLimit = 20

type SubmissionUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, req entity.CreateSubmissionRequest) (*entity.SubmissionResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.SubmissionResponse, error)
	List(ctx context.Context, userID uuid.UUID, req entity.ListSubmissionsRequest) ([]entity.SubmissionResponse, entity.PageMeta, error)

	Solve(ctx context.Context, userID, id uuid.UUID) (*entity.SubmissionResponse, error)
	Complete(ctx context.Context, id uuid.UUID, req entity.CompleteSubmissionRequest) (*entity.SubmissionResponse, error)
	Fail(ctx context.Context, id uuid.UUID, req entity.FailSubmissionRequest) (*entity.SubmissionResponse, error)
	Archive(ctx context.Context, userID, id uuid.UUID) (*entity.SubmissionResponse, error)
	Rate(ctx context.Context, userID, id uuid.UUID, req entity.RateSubmissionRequest) (*entity.SubmissionResponse, error)
}

type SubmissionConfig struct {
	DB           *gorm.DB
	Repository   repository.SubmissionRepository
	CatalogRepo  repository.CatalogRepository
	ProgressRepo repository.ProgressRepository
	Catalog      CatalogUsecase
	Gamification GamificationUsecase
	// Solver may be nil; Solve then fails with ErrSolverUnavailable.
	Solver       llm.Solver
	Log          *logrus.Logger
	Now          func() time.Time
	SolveTimeout time.Duration
	Retry        dbretry.Config
}

type submissionUsecase struct {
	cfg SubmissionConfig
}

func NewSubmissionUsecase(cfg SubmissionConfig) SubmissionUsecase {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SolveTimeout <= 0 {
		cfg.SolveTimeout = 60 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = dbretry.DefaultConfig()
	}
	return &submissionUsecase{cfg: cfg}
}

func (u *submissionUsecase) log() *logrus.Logger {
	if u.cfg.Log == nil {
		return logrus.StandardLogger()
	}
	return u.cfg.Log
}

func (u *submissionUsecase) Create(ctx context.Context, userID uuid.UUID, req entity.CreateSubmissionRequest) (*entity.SubmissionResponse, error) {
	db := u.cfg.DB.WithContext(ctx)

	inputType := entity.InputType(req.InputType)
	if inputType != entity.InputTypeText && strings.TrimSpace(req.InputURL) == "" {
		return nil, fmt.Errorf("%s input needs input_url: %w", inputType, ErrInvalidInput)
	}

	subject, err := u.cfg.CatalogRepo.FindSubjectByName(db, req.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("unknown subject %q: %w", req.Subject, ErrInvalidInput)
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	if !subject.IsActive {
		return nil, fmt.Errorf("subject %q is not active: %w", subject.Name, ErrInvalidInput)
	}

	difficulty := entity.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = entity.DifficultyMedium
	}

	grade := req.GradeLevel
	if grade == "" {
		// fallback ke grade di profile kalau ada
		if profile, err := u.cfg.ProgressRepo.FindProfile(db, userID); err == nil {
			grade = profile.GradeLevel
		}
	}

	var template *internalEntity.PromptTemplate
	if !req.BypassPrompt {
		template, err = u.cfg.Catalog.SelectPrompt(ctx, subject.Name, inputType, difficulty, grade, req.Tags)
		if err != nil {
			return nil, fmt.Errorf("select prompt: %w", err)
		}
	}

	input := req.InputText
	if inputType != entity.InputTypeText {
		input = strings.TrimSpace(req.InputText + "\n" + req.InputURL)
	}

	sub := &internalEntity.Submission{
		UserID:     userID,
		Subject:    subject.Name,
		Difficulty: string(difficulty),
		InputType:  string(inputType),
		GradeLevel: grade,
		Tags:       datatypes.JSONSlice[string](req.Tags),
		InputText:  req.InputText,
		InputURL:   req.InputURL,
		ResolvedPrompt: RenderPrompt(template, PromptVars{
			Input:      input,
			GradeLevel: grade,
			Subject:    subject.Name,
			Difficulty: string(difficulty),
		}),
		Status: string(entity.StatusPending),
	}
	if template != nil {
		sub.PromptTemplateID = &template.ID
	}

	if err := u.cfg.Repository.Create(db, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	u.log().WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"user_id":       userID,
		"subject":       sub.Subject,
		"templated":     template != nil,
	}).Info("submission created")

	res := mapper.ToSubmissionResponse(sub)
	return &res, nil
}

func (u *submissionUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entity.SubmissionResponse, error) {
	sub, err := u.cfg.Repository.FindByID(u.cfg.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "submission")
	}
	if sub.UserID != userID {
		return nil, ErrForbidden
	}

	res := mapper.ToSubmissionResponse(sub)
	return &res, nil
}

func (u *submissionUsecase) List(ctx context.Context, userID uuid.UUID, req entity.ListSubmissionsRequest) ([]entity.SubmissionResponse, entity.PageMeta, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	subs, total, err := u.cfg.Repository.FindByUser(u.cfg.DB.WithContext(ctx), repository.SubmissionFilter{
		UserID: userID,
		Status: req.Status,
		Limit:  limit,
		Offset: req.Offset,
	})
	meta := entity.PageMeta{Limit: limit, Offset: req.Offset, Total: total}
	if err != nil {
		return nil, meta, err
	}

	out := make([]entity.SubmissionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, mapper.ToSubmissionResponse(&subs[i]))
	}
	return out, meta, nil
}

// Solve runs the solver for a pending submission and completes or fails it
// with the result. A solver failure is recorded on the submission, not
// returned as an error.
func (u *submissionUsecase) Solve(ctx context.Context, userID, id uuid.UUID) (*entity.SubmissionResponse, error) {
	if u.cfg.Solver == nil {
		return nil, ErrSolverUnavailable
	}

	sub, err := u.transition(ctx, id, func(sub *internalEntity.Submission) error {
		if sub.UserID != userID {
			return ErrForbidden
		}
		return u.moveTo(sub, entity.StatusProcessing)
	})
	if err != nil {
		return nil, err
	}

	req := llm.SolveRequest{
		Prompt:    sub.ResolvedPrompt,
		InputText: sub.InputText,
		InputURL:  sub.InputURL,
		InputType: sub.InputType,
	}
	if sub.PromptTemplateID != nil {
		if tpl, err := u.cfg.CatalogRepo.FindTemplateByID(u.cfg.DB.WithContext(ctx), *sub.PromptTemplateID); err == nil {
			req.MaxTokens = tpl.MaxTokens
			req.Temperature = tpl.Temperature
		}
	}

	solveCtx, cancel := context.WithTimeout(ctx, u.cfg.SolveTimeout)
	defer cancel()

	started := u.cfg.Now()
	sol, err := u.cfg.Solver.Solve(solveCtx, req)
	elapsed := u.cfg.Now().Sub(started)

	if err != nil {
		u.log().WithFields(logrus.Fields{
			"submission_id": id,
			"model":         u.cfg.Solver.ModelID(),
		}).WithError(err).Error("solver failed")
		return u.Fail(ctx, id, entity.FailSubmissionRequest{Message: err.Error()})
	}

	steps := make([]entity.SolutionStep, len(sol.Steps))
	for i, st := range sol.Steps {
		steps[i] = entity.SolutionStep{Order: i + 1, Title: st.Title, Content: st.Content}
	}

	return u.Complete(ctx, id, entity.CompleteSubmissionRequest{
		Solution:         sol.Solution,
		Explanation:      sol.Explanation,
		Steps:            steps,
		Confidence:       sol.Confidence,
		AIModel:          sol.Model,
		ProcessingTimeMs: elapsed.Milliseconds(),
	})
}

// Complete records the solver output and credits the ledger. Completing an
// already completed submission changes nothing but still makes sure the
// ledger saw it.
func (u *submissionUsecase) Complete(ctx context.Context, id uuid.UUID, req entity.CompleteSubmissionRequest) (*entity.SubmissionResponse, error) {
	sub, err := u.transition(ctx, id, func(sub *internalEntity.Submission) error {
		if entity.SubmissionStatus(sub.Status) == entity.StatusCompleted {
			return nil
		}
		if err := u.moveTo(sub, entity.StatusCompleted); err != nil {
			return err
		}

		completedAt := u.cfg.Now()
		sub.Solution = req.Solution
		sub.Explanation = req.Explanation
		sub.Steps = datatypes.JSONSlice[internalEntity.SolutionStep](mapper.ToSolutionSteps(req.Steps))
		sub.Confidence = req.Confidence
		sub.AIModel = req.AIModel
		sub.ProcessingTimeMs = max(req.ProcessingTimeMs, 0)
		sub.ErrorMessage = ""
		sub.CompletedAt = &completedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	credit, err := u.cfg.Gamification.OnSubmissionCompleted(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("credit submission: %w", err)
	}

	// ikut credit, bukan transisi status: redelivery setelah credit gagal tetap refresh stats
	if !credit.Duplicate && sub.Rating != nil && sub.PromptTemplateID != nil {
		if _, err := u.cfg.Gamification.OnSubmissionRated(ctx, id); err != nil {
			return nil, fmt.Errorf("refresh template stats: %w", err)
		}
	}

	return u.reload(ctx, id)
}

func (u *submissionUsecase) Fail(ctx context.Context, id uuid.UUID, req entity.FailSubmissionRequest) (*entity.SubmissionResponse, error) {
	sub, err := u.transition(ctx, id, func(sub *internalEntity.Submission) error {
		if err := u.moveTo(sub, entity.StatusError); err != nil {
			return err
		}
		sub.ErrorMessage = req.Message
		return nil
	})
	if err != nil {
		return nil, err
	}

	// gagal juga mempengaruhi success rate template
	if sub.PromptTemplateID != nil {
		if _, err := u.cfg.Gamification.OnSubmissionRated(ctx, id); err != nil {
			u.log().WithField("submission_id", id).WithError(err).Warn("refresh template stats after failure")
		}
	}

	res := mapper.ToSubmissionResponse(sub)
	return &res, nil
}

func (u *submissionUsecase) Archive(ctx context.Context, userID, id uuid.UUID) (*entity.SubmissionResponse, error) {
	sub, err := u.transition(ctx, id, func(sub *internalEntity.Submission) error {
		if sub.UserID != userID {
			return ErrForbidden
		}
		return u.moveTo(sub, entity.StatusArchived)
	})
	if err != nil {
		return nil, err
	}

	res := mapper.ToSubmissionResponse(sub)
	return &res, nil
}

// Rate stores the learner's rating. Points already credited are never
// changed; only template statistics follow the new rating.
func (u *submissionUsecase) Rate(ctx context.Context, userID, id uuid.UUID, req entity.RateSubmissionRequest) (*entity.SubmissionResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating %d out of range: %w", req.Rating, ErrInvalidInput)
	}

	sub, err := u.transition(ctx, id, func(sub *internalEntity.Submission) error {
		if sub.UserID != userID {
			return ErrForbidden
		}
		if !CanRate(entity.SubmissionStatus(sub.Status)) {
			return fmt.Errorf("rate submission in status %s: %w", sub.Status, ErrInvalidTransition)
		}
		rating := req.Rating
		sub.Rating = &rating
		sub.Feedback = req.Feedback
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sub.PromptTemplateID != nil {
		if _, err := u.cfg.Gamification.OnSubmissionRated(ctx, id); err != nil {
			return nil, fmt.Errorf("refresh template stats: %w", err)
		}
	}

	res := mapper.ToSubmissionResponse(sub)
	return &res, nil
}

// transition locks the submission row, applies change and saves it.
func (u *submissionUsecase) transition(ctx context.Context, id uuid.UUID, change func(*internalEntity.Submission) error) (*internalEntity.Submission, error) {
	var out *internalEntity.Submission

	err := dbretry.Do(ctx, u.cfg.Retry, func() error {
		return u.cfg.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			sub, err := u.cfg.Repository.LockByID(tx, id)
			if err != nil {
				return notFound(err, "submission")
			}
			if err := change(sub); err != nil {
				return err
			}
			if err := u.cfg.Repository.Save(tx, sub); err != nil {
				return fmt.Errorf("save submission: %w", err)
			}
			out = sub
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *submissionUsecase) moveTo(sub *internalEntity.Submission, to entity.SubmissionStatus) error {
	from := entity.SubmissionStatus(sub.Status)
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	sub.Status = string(to)

	u.log().WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"from":          from,
		"to":            to,
	}).Debug("submission status changed")
	return nil
}

func (u *submissionUsecase) reload(ctx context.Context, id uuid.UUID) (*entity.SubmissionResponse, error) {
	sub, err := u.cfg.Repository.FindByID(u.cfg.DB.WithContext(ctx), id)
	if err != nil {
		return nil, notFound(err, "submission")
	}
	res := mapper.ToSubmissionResponse(sub)
	return &res, nil
}
