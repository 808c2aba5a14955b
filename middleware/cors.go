package middleware

import (
	"github.com/Cristiano-Arias/Portal-Proposta/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// InitCors applies CORS settings to the app. The portal frontend is served
// from a separate origin, so ALLOWED_ORIGINS must list it in production.
func InitCors(app *fiber.App) {
	allowOrigins := config.GetEnvOrDefault("ALLOWED_ORIGINS", "*")

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With",
	}))
}
