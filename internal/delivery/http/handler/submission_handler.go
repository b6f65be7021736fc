package handler

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/domain"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/entity"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/usecase"
	"github.com/evandrarf/learnquest-be/internal/pkg/response"
	"github.com/evandrarf/learnquest-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	SubmissionHandler interface {
		Create(ctx *fiber.Ctx) error
		Get(ctx *fiber.Ctx) error
		List(ctx *fiber.Ctx) error
		Solve(ctx *fiber.Ctx) error
		Complete(ctx *fiber.Ctx) error
		Fail(ctx *fiber.Ctx) error
		Archive(ctx *fiber.Ctx) error
		Rate(ctx *fiber.Ctx) error
	}

	submissionHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.SubmissionUsecase
	}
)

func NewSubmissionHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.SubmissionUsecase) SubmissionHandler {
	return &submissionHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /submissions
func (h *submissionHandler) Create(ctx *fiber.Ctx) error {
	var req entity.CreateSubmissionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.SUBMISSION_CREATE_FAILED, err, h.logger)
	}

	res, err := h.usecase.Create(ctx.UserContext(), middleware.UserID(ctx), req)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_CREATE_FAILED, err, h.logger)
	}
	return response.NewCreated(domain.SUBMISSION_CREATE_SUCCESS, res).Send(ctx)
}

// GET /submissions/:id
func (h *submissionHandler) Get(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.SUBMISSION_GET_FAILED, err, h.logger)
	}

	res, err := h.usecase.Get(ctx.UserContext(), middleware.UserID(ctx), id)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_GET_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_GET_SUCCESS, res, nil).Send(ctx)
}

// GET /submissions?status=&limit=&offset=
func (h *submissionHandler) List(ctx *fiber.Ctx) error {
	var req entity.ListSubmissionsRequest
	if err := h.validator.ParseQueryAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.SUBMISSION_LIST_FAILED, err, h.logger)
	}

	res, meta, err := h.usecase.List(ctx.UserContext(), middleware.UserID(ctx), req)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_LIST_SUCCESS, res, meta).Send(ctx)
}

// POST /submissions/:id/solve
func (h *submissionHandler) Solve(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.SUBMISSION_SOLVE_FAILED, err, h.logger)
	}

	res, err := h.usecase.Solve(ctx.UserContext(), middleware.UserID(ctx), id)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_SOLVE_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_SOLVE_SUCCESS, res, nil).Send(ctx)
}

// POST /submissions/:id/complete (internal)
func (h *submissionHandler) Complete(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.SUBMISSION_COMPLETE_FAILED, err, h.logger)
	}

	var req entity.CompleteSubmissionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.SUBMISSION_COMPLETE_FAILED, err, h.logger)
	}

	res, err := h.usecase.Complete(ctx.UserContext(), id, req)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_COMPLETE_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_COMPLETE_SUCCESS, res, nil).Send(ctx)
}

// POST /submissions/:id/fail (internal)
func (h *submissionHandler) Fail(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.SUBMISSION_FAIL_FAILED, err, h.logger)
	}

	var req entity.FailSubmissionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.SUBMISSION_FAIL_FAILED, err, h.logger)
	}

	res, err := h.usecase.Fail(ctx.UserContext(), id, req)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_FAIL_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_FAIL_SUCCESS, res, nil).Send(ctx)
}

// POST /submissions/:id/archive
func (h *submissionHandler) Archive(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.SUBMISSION_ARCHIVE_FAILED, err, h.logger)
	}

	res, err := h.usecase.Archive(ctx.UserContext(), middleware.UserID(ctx), id)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_ARCHIVE_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_ARCHIVE_SUCCESS, res, nil).Send(ctx)
}

// POST /submissions/:id/rating
func (h *submissionHandler) Rate(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return fail(ctx, domain.SUBMISSION_RATE_FAILED, err, h.logger)
	}

	var req entity.RateSubmissionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.SUBMISSION_RATE_FAILED, err, h.logger)
	}

	res, err := h.usecase.Rate(ctx.UserContext(), middleware.UserID(ctx), id, req)
	if err != nil {
		return fail(ctx, domain.SUBMISSION_RATE_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.SUBMISSION_RATE_SUCCESS, res, nil).Send(ctx)
}
