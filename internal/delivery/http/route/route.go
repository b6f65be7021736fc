package route

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/handler"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouteConfig struct {
	Api               *fiber.App
	Middleware        *middleware.Middleware
	CatalogHandler    handler.CatalogHandler
	SubmissionHandler handler.SubmissionHandler
	ProgressHandler   handler.ProgressHandler
}

func Setup(c *RouteConfig) {
	c.Api.Use(recover.New())
	c.Api.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
	}))
	c.Api.Use(c.Middleware.CorsMiddleware())

	c.Api.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	SetupCatalogRoute(c.Api, c.CatalogHandler, c.Middleware)
	SetupSubmissionRoute(c.Api, c.SubmissionHandler, c.Middleware)
	SetupProgressRoute(c.Api, c.ProgressHandler, c.Middleware)
}
