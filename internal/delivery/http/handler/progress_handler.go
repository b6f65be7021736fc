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
	ProgressHandler interface {
		UpsertProfile(ctx *fiber.Ctx) error
		GetProgress(ctx *fiber.Ctx) error
		ListAchievements(ctx *fiber.Ctx) error
		ListMyAchievements(ctx *fiber.Ctx) error
		CheckAchievements(ctx *fiber.Ctx) error
	}

	progressHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.GamificationUsecase
	}
)

func NewProgressHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.GamificationUsecase) ProgressHandler {
	return &progressHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// PUT /profile
func (h *progressHandler) UpsertProfile(ctx *fiber.Ctx) error {
	var req entity.UpsertProfileRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return fail(ctx, domain.PROFILE_UPSERT_FAILED, err, h.logger)
	}

	res, err := h.usecase.UpsertProfile(ctx.UserContext(), middleware.UserID(ctx), req)
	if err != nil {
		return fail(ctx, domain.PROFILE_UPSERT_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.PROFILE_UPSERT_SUCCESS, res, nil).Send(ctx)
}

// GET /progress
func (h *progressHandler) GetProgress(ctx *fiber.Ctx) error {
	res, err := h.usecase.GetProgress(ctx.UserContext(), middleware.UserID(ctx))
	if err != nil {
		return fail(ctx, domain.PROGRESS_GET_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.PROGRESS_GET_SUCCESS, res, nil).Send(ctx)
}

// GET /achievements
func (h *progressHandler) ListAchievements(ctx *fiber.Ctx) error {
	res, err := h.usecase.ListAchievements(ctx.UserContext())
	if err != nil {
		return fail(ctx, domain.ACHIEVEMENT_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.ACHIEVEMENT_LIST_SUCCESS, res, nil).Send(ctx)
}

// GET /achievements/me
func (h *progressHandler) ListMyAchievements(ctx *fiber.Ctx) error {
	res, err := h.usecase.ListUserAchievements(ctx.UserContext(), middleware.UserID(ctx))
	if err != nil {
		return fail(ctx, domain.ACHIEVEMENT_LIST_FAILED, err, h.logger)
	}
	return response.NewSuccess(domain.ACHIEVEMENT_LIST_SUCCESS, res, nil).Send(ctx)
}

// POST /achievements/check
func (h *progressHandler) CheckAchievements(ctx *fiber.Ctx) error {
	ids, err := h.usecase.CheckAndAward(ctx.UserContext(), middleware.UserID(ctx))
	if err != nil {
		return fail(ctx, domain.ACHIEVEMENT_CHECK_FAILED, err, h.logger)
	}

	res := entity.CheckAchievementsResponse{Awarded: make([]string, 0, len(ids))}
	for _, id := range ids {
		res.Awarded = append(res.Awarded, id.String())
	}
	return response.NewSuccess(domain.ACHIEVEMENT_CHECK_SUCCESS, res, nil).Send(ctx)
}
