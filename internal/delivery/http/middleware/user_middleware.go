package middleware

import (
	"crypto/subtle"

	"github.com/evandrarf/learnquest-be/internal/delivery/http/domain"
	"github.com/evandrarf/learnquest-be/internal/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	UserIDHeader      = "X-User-ID"
	InternalKeyHeader = "X-Internal-Key"

	userIDLocal = "user_id"
)

// UserMiddleware - User id datang dari identity provider di depan service ini
func (m *Middleware) UserMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := uuid.Parse(ctx.Get(UserIDHeader))
		if err != nil || id == uuid.Nil {
			return response.NewFailed(domain.USER_ID_INVALID, fiber.NewError(fiber.StatusUnauthorized, "X-User-ID header must be a uuid"), m.Log).Send(ctx)
		}
		ctx.Locals(userIDLocal, id)
		return ctx.Next()
	}
}

// InternalKeyMiddleware guards endpoints meant for the solver worker. When no
// key is configured the endpoints are closed.
func (m *Middleware) InternalKeyMiddleware() fiber.Handler {
	expected := m.configString("api.internal_key")

	return func(ctx *fiber.Ctx) error {
		got := ctx.Get(InternalKeyHeader)
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			return response.NewFailed(domain.INTERNAL_KEY_INVALID, fiber.NewError(fiber.StatusForbidden, ""), m.Log).Send(ctx)
		}
		return ctx.Next()
	}
}

// UserID returns the id stored by UserMiddleware.
func UserID(ctx *fiber.Ctx) uuid.UUID {
	id, _ := ctx.Locals(userIDLocal).(uuid.UUID)
	return id
}
