package handler

import (
	"errors"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/usecase"
	"github.com/evandrarf/learnquest-be/internal/pkg/response"
	"github.com/evandrarf/learnquest-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// statusFor maps usecase errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrSolverUnavailable):
		return fiber.StatusServiceUnavailable
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

func fail(ctx *fiber.Ctx, msg string, err error, log *logrus.Logger) error {
	var fieldsErr *validate.FieldsError
	if errors.As(err, &fieldsErr) {
		return response.NewFailed(msg, fieldsErr, log).Send(ctx)
	}

	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		if log != nil {
			log.WithError(err).Error(msg)
		}
		return response.NewFailed(msg, fiber.NewError(code, ""), nil).Send(ctx)
	}
	return response.NewFailed(msg, fiber.NewError(code, err.Error()), log).Send(ctx)
}

func paramUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" must be a uuid")
	}
	return id, nil
}
