// Package operation exposes the ledger engine over HTTP: deposits,
// withdrawals, statements and operation listings.
package operation

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/middleware"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	"github.com/felipecesargomes/banking-api/pkg/service/ledger"
	webaccount "github.com/felipecesargomes/banking-api/webapi/account"
	"github.com/felipecesargomes/banking-api/webapi/common"
)

// Routes registers the ledger endpoints:
//   - POST /operations/deposit                : credit an account
//   - POST /operations/withdraw               : debit an account
//   - GET  /operations/:accountID/statement   : account history page
//   - GET  /operations                        : filtered operation listing
func Routes(app *fiber.App, svc *ledger.Service, cfg *config.App) {
	app.Post("/operations/deposit", middleware.JwtProtected(cfg.Jwt), Deposit(svc))
	app.Post("/operations/withdraw", middleware.JwtProtected(cfg.Jwt), Withdraw(svc))
	app.Get("/operations/:accountID/statement", middleware.JwtProtected(cfg.Jwt), Statement(svc))
	app.Get("/operations", middleware.JwtProtected(cfg.Jwt), ListOperations(svc))
}

// Deposit handles POST /operations/deposit.
func Deposit(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, amount, err := bindOperation(c, account.OperationDeposit)
		if input == nil {
			return err
		}
		op, err := svc.Deposit(c.UserContext(), input.AccountID, amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit recorded", ToDTO(op))
	}
}

// Withdraw handles POST /operations/withdraw.
func Withdraw(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, amount, err := bindOperation(c, account.OperationWithdrawal)
		if input == nil {
			return err
		}
		op, err := svc.Withdraw(c.UserContext(), input.AccountID, amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to withdraw", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal recorded", ToDTO(op))
	}
}

// Statement handles GET /operations/:accountID/statement. Deactivated
// accounts may still be queried; history access survives deactivation.
func Statement(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawID, err := strconv.ParseUint(c.Params("accountID"), 10, 32)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		limit := c.QueryInt("limit", ledger.DefaultStatementLimit)
		offset := c.QueryInt("offset", 0)

		st, err := svc.Statement(c.UserContext(), uint(rawID), limit, offset)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch statement", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement", StatementResponse{
			Account:         webaccount.ToDTO(st.Account),
			Operations:      toDTOs(st.Operations),
			TotalOperations: st.TotalOperations,
		})
	}
}

// ListOperations handles GET /operations with optional account and kind
// filters.
func ListOperations(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.OperationFilter{
			Skip:  c.QueryInt("skip", 0),
			Limit: c.QueryInt("limit", ledger.DefaultListLimit),
		}
		if accountID := c.QueryInt("account_id", 0); accountID > 0 {
			id := uint(accountID)
			filter.AccountID = &id
		}
		if rawKind := c.Query("operation_kind"); rawKind != "" {
			kind, err := account.ParseOperationKind(rawKind)
			if err != nil {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid operation kind", err.Error())
			}
			filter.Kind = &kind
		}

		ops, err := svc.ListOperations(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list operations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Operations listed", toDTOs(ops))
	}
}

// bindOperation parses and validates an operation request, checking the
// declared kind against the endpoint and converting the amount to money.
// On failure the error response is already written and the input is nil.
func bindOperation(
	c *fiber.Ctx,
	want account.OperationKind,
) (*OperationRequest, money.Money, error) {
	input, err := common.BindAndValidate[OperationRequest](c)
	if input == nil {
		return nil, money.Zero, err
	}
	if input.OperationKind != string(want) {
		return nil, money.Zero, common.ErrorResponseJSON(
			c, fiber.StatusBadRequest, "Operation kind mismatch",
			"operation_kind must be '"+string(want)+"' for this endpoint")
	}
	amount, err := money.New(input.Amount)
	if err != nil {
		return nil, money.Zero, common.ProblemDetailsJSON(c, "Invalid amount", err)
	}
	return input, amount, nil
}
