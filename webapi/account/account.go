// Package account exposes the account lifecycle over HTTP.
package account

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/middleware"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	accountsvc "github.com/felipecesargomes/banking-api/pkg/service/account"
	"github.com/felipecesargomes/banking-api/webapi/common"
)

// Routes registers the account lifecycle endpoints:
//   - POST   /accounts                  : open an account
//   - GET    /accounts                  : list active accounts
//   - GET    /accounts/:id              : fetch one account
//   - PATCH  /accounts/:id/deactivate   : soft-delete an account
func Routes(app *fiber.App, svc *accountsvc.Service, cfg *config.App) {
	app.Post("/accounts", middleware.JwtProtected(cfg.Jwt), CreateAccount(svc))
	app.Get("/accounts", middleware.JwtProtected(cfg.Jwt), ListAccounts(svc))
	app.Get("/accounts/:id", middleware.JwtProtected(cfg.Jwt), GetAccount(svc))
	app.Patch("/accounts/:id/deactivate", middleware.JwtProtected(cfg.Jwt), DeactivateAccount(svc))
}

// CreateAccount handles POST /accounts.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}

		kind := account.KindChecking
		if input.AccountKind != "" {
			kind, err = account.ParseKind(input.AccountKind)
			if err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account kind", err.Error())
			}
		}
		initialBalance, err := money.New(input.InitialBalance)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid initial balance", err)
		}
		dailyLimit := account.DefaultDailyLimit
		if input.DailyLimit != nil {
			dailyLimit, err = money.New(*input.DailyLimit)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid daily limit", err)
			}
		}

		a, err := svc.CreateAccount(c.UserContext(), input.OwnerID, kind, initialBalance, dailyLimit)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToDTO(a))
	}
}

// ListAccounts handles GET /accounts. Only active accounts are listed,
// optionally filtered by owner.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.AccountFilter{
			Skip:  c.QueryInt("skip", 0),
			Limit: c.QueryInt("limit", accountsvc.DefaultListLimit),
		}
		if ownerID := c.QueryInt("owner_id", 0); ownerID > 0 {
			id := int64(ownerID)
			filter.OwnerID = &id
		}

		accounts, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		dtos := make([]AccountDTO, 0, len(accounts))
		for _, a := range accounts {
			dtos = append(dtos, ToDTO(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts listed", dtos)
	}
}

// GetAccount handles GET /accounts/:id. Inactive accounts are returned too.
func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account found", ToDTO(a))
	}
}

// DeactivateAccount handles PATCH /accounts/:id/deactivate.
func DeactivateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseAccountID(c)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		if err := svc.Deactivate(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to deactivate account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deactivated", nil)
	}
}

func parseAccountID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
