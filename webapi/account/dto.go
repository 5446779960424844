package account

import (
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
)

// CreateAccountRequest is the request body for opening an account. DailyLimit
// is a pointer so an explicit zero is rejected instead of silently taking the
// default.
type CreateAccountRequest struct {
	OwnerID        int64    `json:"owner_id" validate:"required,gt=0"`
	AccountKind    string   `json:"account_kind" validate:"omitempty,oneof=checking savings"`
	InitialBalance float64  `json:"initial_balance" validate:"omitempty,gte=0"`
	DailyLimit     *float64 `json:"daily_limit" validate:"omitempty,gt=0,lte=10000"`
}

// AccountDTO is the API representation of an account. Monetary values are
// decimal numbers with two fractional digits; timestamps are UTC.
type AccountDTO struct {
	ID          uint      `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	AccountKind string    `json:"account_kind"`
	Balance     float64   `json:"balance"`
	DailyLimit  float64   `json:"daily_limit"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDTO maps a domain account to its API representation.
func ToDTO(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		AccountKind: string(a.Kind),
		Balance:     a.Balance.Float64(),
		DailyLimit:  a.DailyLimit.Float64(),
		Active:      a.Active,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}
