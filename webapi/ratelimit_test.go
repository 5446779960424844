package webapi_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipecesargomes/banking-api/internal/fixtures/memstore"
	"github.com/felipecesargomes/banking-api/pkg/app"
	"github.com/felipecesargomes/banking-api/webapi"
	"github.com/felipecesargomes/banking-api/webapi/testutils"
)

func TestRateLimit(t *testing.T) {
	cfg := testutils.TestConfig()
	cfg.RateLimit.MaxRequests = 3
	cfg.RateLimit.Window = time.Minute

	a := app.New(memstore.New().UoW(), cfg, slog.New(slog.DiscardHandler))
	fiberApp := webapi.SetupApp(a)

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp, err := fiberApp.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close() //nolint: errcheck
		return resp.StatusCode
	}

	for range 3 {
		assert.Equal(t, fiber.StatusOK, hit("10.0.0.1"))
	}
	assert.Equal(t, fiber.StatusTooManyRequests, hit("10.0.0.1"))

	// The limit is per client, not global.
	assert.Equal(t, fiber.StatusOK, hit("10.0.0.2"))
}
