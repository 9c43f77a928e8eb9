package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const HeaderWebhookSecret = "X-Webhook-Secret"

// WebhookSecret menolak request yang header X-Webhook-Secret-nya tidak cocok.
// Secret kosong di konfigurasi berarti semua request ditolak.
func WebhookSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(HeaderWebhookSecret)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Secret webhook tidak valid"})
		}
		return c.Next()
	}
}
