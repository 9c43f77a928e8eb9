package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestContext memberi setiap request X-Request-ID dan batas waktu pada UserContext.
func RequestContext(timeout time.Duration, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if dur := time.Since(start); dur > timeout/2 {
			log.Warn("request lambat",
				zap.String("id", id),
				zap.String("method", c.Method()),
				zap.String("path", c.OriginalURL()),
				zap.Duration("dur", dur))
		}
		return err
	}
}

// WebhookRateLimiter: mesin sidik jari bisa mengirim banyak scan sekaligus saat jam masuk
func WebhookRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        600,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Terlalu banyak permintaan. Silakan coba lagi nanti."})
		},
	})
}

// LoginRateLimiter lebih ketat untuk mencegah tebak password
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Terlalu banyak percobaan login. Coba beberapa saat lagi."})
		},
	})
}
