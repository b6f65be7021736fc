package route

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/handler"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoute(api *fiber.App, handler handler.CatalogHandler, m *middleware.Middleware) {
	subjectRouter := api.Group("/subjects")
	{
		subjectRouter.Get("/", handler.ListSubjects)
		subjectRouter.Get("/:name/prompts", handler.ListPrompts)
	}

	promptRouter := api.Group("/prompts")
	{
		promptRouter.Get("/select", handler.SelectPrompt)
		promptRouter.Post("/", m.UserMiddleware(), handler.CreatePrompt)
		promptRouter.Put("/:id", m.UserMiddleware(), handler.UpdatePrompt)
		promptRouter.Patch("/:id/active", m.UserMiddleware(), handler.SetPromptActive)
	}
}
