// Package auth exposes token issuance over HTTP.
package auth

import (
	"github.com/gofiber/fiber/v2"

	authsvc "github.com/felipecesargomes/banking-api/pkg/service/auth"
	"github.com/felipecesargomes/banking-api/webapi/common"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Routes registers the auth endpoints.
func Routes(app *fiber.App, svc *authsvc.AuthService) {
	app.Post("/auth/login", Login(svc))
}

// Login handles POST /auth/login and issues a bearer token for the caller.
func Login(svc *authsvc.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		token, err := svc.Login(input.Username)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Login failed", err.Error())
		}
		return c.Status(fiber.StatusOK).JSON(TokenResponse{
			AccessToken: token,
			TokenType:   "bearer",
		})
	}
}
