package routes

import (
	"absensi-sekolah/internal/handler"
	"absensi-sekolah/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewAuthHandler(d.Auth)

	api := app.Group("/api/auth")
	api.Post("/login", middleware.LoginRateLimiter(), hdl.Login)
	api.Get("/me", middleware.Auth(d.Config.JWTSecret), hdl.Me)
}
