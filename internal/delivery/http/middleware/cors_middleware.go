package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func (m *Middleware) CorsMiddleware() fiber.Handler {
	allowOrigins := m.configString("api.cors.origins")
	if allowOrigins == "" {
		allowOrigins = "*"
	}

	return cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Content-Length, Accept-Encoding, X-User-ID, X-Internal-Key",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE",
		AllowOrigins:  allowOrigins,
		ExposeHeaders: "Content-Length, Content-Type",
	})
}
