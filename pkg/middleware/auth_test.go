package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipecesargomes/banking-api/config"
)

func signToken(t *testing.T, secret string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(expiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(cfg config.Jwt) *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func requestWithToken(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close() //nolint: errcheck
	return resp.StatusCode
}

func TestJwtProtected(t *testing.T) {
	cfg := config.Jwt{Secret: "secret", Expiry: time.Hour}
	app := protectedApp(cfg)

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, "secret", time.Hour)
		assert.Equal(t, fiber.StatusOK, requestWithToken(t, app, token))
	})

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusBadRequest, requestWithToken(t, app, ""))
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Token abc")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close() //nolint: errcheck
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong signature", func(t *testing.T) {
		token := signToken(t, "other-secret", time.Hour)
		assert.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, token))
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "secret", -time.Hour)
		assert.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, token))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, "garbage"))
	})
}
