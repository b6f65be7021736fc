package handler

import (
	"strings"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/domain"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/usecase"
	"github.com/evandrarf/learnquest-be/internal/pkg/mapper"
	"github.com/evandrarf/learnquest-be/internal/pkg/response"
	"github.com/evandrarf/learnquest-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	CatalogHandler interface {
		ListSubjects(ctx *fiber.Ctx) error
		ListPrompts(ctx *fiber.Ctx) error
		SelectPrompt(ctx *fiber.Ctx) error
		CreatePrompt(ctx *fiber.Ctx) error
		UpdatePrompt(ctx *fiber.Ctx) error
		SetPromptActive(ctx *fiber.Ctx) error
	}

	catalogHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.CatalogUsecase
	}
)

func NewCatalogHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.CatalogUsecase) CatalogHandler {
	return &catalogHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// GET /subjects
func (h *catalogHandler) ListSubjects(ctx *fiber.Ctx) error {
	subjects, err := h.usecase.ListSubjects(ctx.UserContext())
	if err != nil {
		return fail(ctx, domain.SUBJECT_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBJECT_LIST_SUCCESS, subjects, nil).Send(ctx)
}

// GET /subjects/:name/prompts?difficulty=&input_type=&grade=&keyword=&active_only=
func (h *catalogHandler) ListPrompts(ctx *fiber.Ctx) error {
	var req entity.ListPromptsRequest
	if err := h.validator.ParseQueryAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.PROMPT_LIST_FAILED, err, h.logger)
	}

	templates, err := h.usecase.ListTemplates(ctx.UserContext(), ctx.Params("name"), req)
	if err != nil {
		return fail(ctx, domain.PROMPT_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.PROMPT_LIST_SUCCESS, templates, nil).Send(ctx)
}

// GET /prompts/select?subject=&input_type=&difficulty=&grade=&keywords=a,b
func (h *catalogHandler) SelectPrompt(ctx *fiber.Ctx) error {
	var req entity.SelectPromptRequest
	if err := h.validator.ParseQueryAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.PROMPT_SELECT_FAILED, err, h.logger)
	}

	var keywords []string
	for _, k := range req.Keywords {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keywords = append(keywords, part)
			}
		}
	}

	tpl, err := h.usecase.SelectPrompt(ctx.UserContext(), req.Subject, entity.InputType(req.InputType), entity.Difficulty(req.Difficulty), req.GradeLevel, keywords)
	if err != nil {
		return fail(ctx, domain.PROMPT_SELECT_FAILED, err, h.logger)
	}
	if tpl == nil {
		return response.NewSuccess(domain.PROMPT_SELECT_EMPTY, nil, nil).Send(ctx)
	}
	return response.NewSuccess(domain.PROMPT_SELECT_SUCCESS, mapper.ToPromptTemplateResponse(tpl), nil).Send(ctx)
}

// POST /prompts
func (h *catalogHandler) CreatePrompt(ctx *fiber.Ctx) error {
	var req entity.CreatePromptTemplateRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.PROMPT_CREATE_FAILED, err, h.logger)
	}

	created, err := h.usecase.CreateTemplate(ctx.UserContext(), req, middleware.UserID(ctx).String())
	if err != nil {
		return fail(ctx, domain.PROMPT_CREATE_FAILED, err, h.logger)
	}
	return response.NewCreated(domain.PROMPT_CREATE_SUCCESS, created).Send(ctx)
}

// PUT /prompts/:id
func (h *catalogHandler) UpdatePrompt(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.PROMPT_UPDATE_FAILED, err, h.logger)
	}

	var req entity.UpdatePromptTemplateRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.PROMPT_UPDATE_FAILED, err, h.logger)
	}

	updated, err := h.usecase.UpdateTemplate(ctx.UserContext(), id, req)
	if err != nil {
		return fail(ctx, domain.PROMPT_UPDATE_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.PROMPT_UPDATE_SUCCESS, updated, nil).Send(ctx)
}

// PATCH /prompts/:id/active
func (h *catalogHandler) SetPromptActive(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.PROMPT_SET_ACTIVE_FAILED, err, h.logger)
	}

	var req entity.SetActiveRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.PROMPT_SET_ACTIVE_FAILED, err, h.logger)
	}

	if err := h.usecase.SetTemplateActive(ctx.UserContext(), id, *req.IsActive); err != nil {
		return fail(ctx, domain.PROMPT_SET_ACTIVE_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.PROMPT_SET_ACTIVE_SUCCESS, fiber.Map{"id": id, "is_active": *req.IsActive}, nil).Send(ctx)
}
