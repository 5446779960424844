// Package webapi assembles the HTTP surface of the banking API. It is thin
// plumbing around the service layer; all ledger semantics live in
// pkg/service.
package webapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/felipecesargomes/banking-api/pkg/app"
	accountweb "github.com/felipecesargomes/banking-api/webapi/account"
	authweb "github.com/felipecesargomes/banking-api/webapi/auth"
	"github.com/felipecesargomes/banking-api/webapi/common"
	operationweb "github.com/felipecesargomes/banking-api/webapi/operation"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	fiberApp.Use(requestid.New())
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Use X-Forwarded-For behind a proxy, first hop in the chain.
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(
				c, fiber.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Banking API is running! 🚀")
	})

	authweb.Routes(fiberApp, a.AuthService)
	accountweb.Routes(fiberApp, a.AccountService, a.Config)
	operationweb.Routes(fiberApp, a.LedgerService, a.Config)
	return fiberApp
}
