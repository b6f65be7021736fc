package route

import (
	"github.com/evandrarf/learnquest-be/internal/delivery/http/handler"
	"github.com/evandrarf/learnquest-be/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoute(api *fiber.App, handler handler.ProgressHandler, m *middleware.Middleware) {
	auth := m.UserMiddleware()

	api.Put("/profile", auth, handler.UpsertProfile)
	api.Get("/progress", auth, handler.GetProgress)

	achievementRouter := api.Group("/achievements")
	{
		achievementRouter.Get("/", handler.ListAchievements)
		achievementRouter.Get("/me", auth, handler.ListMyAchievements)
		achievementRouter.Post("/check", auth, handler.CheckAchievements)
	}
}
