package operation

import (
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	webaccount "github.com/felipecesargomes/banking-api/webapi/account"
)

// OperationRequest is the request body for deposits and withdrawals. The
// declared kind must match the endpoint being called.
type OperationRequest struct {
	AccountID     uint    `json:"account_id" validate:"required,gt=0"`
	OperationKind string  `json:"operation_kind" validate:"required,oneof=deposit withdrawal"`
	Amount        float64 `json:"amount" validate:"required,gt=0,lte=1000000"`
	Description   string  `json:"description" validate:"omitempty,max=255"`
}

// OperationDTO is the API representation of a ledger entry.
type OperationDTO struct {
	ID            uint      `json:"id"`
	Reference     string    `json:"reference"`
	AccountID     uint      `json:"account_id"`
	OperationKind string    `json:"operation_kind"`
	Amount        float64   `json:"amount"`
	BalanceAfter  float64   `json:"balance_after"`
	Description   string    `json:"description,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// StatementResponse is the paginated view of an account's history plus the
// account's current state.
type StatementResponse struct {
	Account         webaccount.AccountDTO `json:"account"`
	Operations      []OperationDTO        `json:"operations"`
	TotalOperations int64                 `json:"total_operations"`
}

// ToDTO maps a domain operation to its API representation.
func ToDTO(op *account.Operation) OperationDTO {
	return OperationDTO{
		ID:            op.ID,
		Reference:     op.Reference.String(),
		AccountID:     op.AccountID,
		OperationKind: string(op.Kind),
		Amount:        op.Amount.Float64(),
		BalanceAfter:  op.BalanceAfter.Float64(),
		Description:   op.Description,
		Timestamp:     op.Timestamp.UTC(),
	}
}

func toDTOs(ops []*account.Operation) []OperationDTO {
	dtos := make([]OperationDTO, 0, len(ops))
	for _, op := range ops {
		dtos = append(dtos, ToDTO(op))
	}
	return dtos
}
