package route

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/handler"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupSubmissionRoute(api *fiber.App, handler handler.SubmissionHandler, m *middleware.Middleware) {
	// Dipanggil oleh solver worker, bukan oleh user
	internalRouter := api.Group("/internal/submissions", m.InternalKeyMiddleware())
	{
		internalRouter.Post("/:id/complete", handler.Complete)
		internalRouter.Post("/:id/fail", handler.Fail)
	}

	router := api.Group("/submissions", m.UserMiddleware())
	{
		router.Post("/", handler.Create)
		router.Get("/", handler.List)
		router.Get("/:id", handler.Get)
		router.Post("/:id/solve", handler.Solve)
		router.Post("/:id/archive", handler.Archive)
		router.Post("/:id/rating", handler.Rate)
	}
}
