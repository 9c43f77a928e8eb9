package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(c *fiber.Ctx) error { return c.SendString("ok") }

func TestWebhookSecret(t *testing.T) {
	app := fiber.New()
	app.Post("/hook", WebhookSecret("s3cret"), ok)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"tanpa header", "", fiber.StatusForbidden},
		{"salah", "salah", fiber.StatusForbidden},
		{"benar", "s3cret", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/hook", nil)
			if tt.header != "" {
				req.Header.Set(HeaderWebhookSecret, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	t.Run("secret kosong menolak semua", func(t *testing.T) {
		closed := fiber.New()
		closed.Post("/hook", WebhookSecret(""), ok)
		req := httptest.NewRequest("POST", "/hook", nil)
		req.Header.Set(HeaderWebhookSecret, "")
		resp, err := closed.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func signed(t *testing.T, secret, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  1,
		"username": "admin",
		"role":     role,
		"exp":      exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthAndRole(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", Auth("rahasia"), Role("admin"), ok)

	call := func(header string) int {
		req := httptest.NewRequest("GET", "/admin", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	future := time.Now().Add(time.Hour)
	assert.Equal(t, fiber.StatusUnauthorized, call(""))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer bukan-token"))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer "+signed(t, "lain", "admin", future)))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer "+signed(t, "rahasia", "admin", time.Now().Add(-time.Hour))))
	assert.Equal(t, fiber.StatusForbidden, call("Bearer "+signed(t, "rahasia", "operator", future)))
	assert.Equal(t, fiber.StatusOK, call("Bearer "+signed(t, "rahasia", "admin", future)))
}
