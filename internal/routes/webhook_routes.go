package routes

import (
	"absensi-sekolah/internal/handler"
	"absensi-sekolah/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupWebhookRoutes(app *fiber.App, d *Dependencies) {
	hdl := handler.NewWebhookHandler(d.Scans, d.Leave, d.Log)

	api := app.Group("/api/webhook", middleware.WebhookRateLimiter())

	api.Post("/fingerprint", hdl.Fingerprint)
	api.Post("/leave-requests", middleware.WebhookSecret(d.Config.WebhookSecret), hdl.LeaveRequest)
}
