package account

import (
	"fmt"
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/google/uuid"
)

// OperationKind identifies the direction of a ledger operation.
type OperationKind string

const (
	// OperationDeposit credits the account.
	OperationDeposit OperationKind = "deposit"
	// OperationWithdrawal debits the account.
	OperationWithdrawal OperationKind = "withdrawal"
)

// ParseOperationKind validates a raw operation kind string.
func ParseOperationKind(s string) (OperationKind, error) {
	switch OperationKind(s) {
	case OperationDeposit, OperationWithdrawal:
		return OperationKind(s), nil
	default:
		return "", fmt.Errorf("unknown operation kind %q", s)
	}
}

// MaxOperationAmount caps the amount of a single deposit or withdrawal.
var MaxOperationAmount = money.FromCents(1_000_000_00)

// MaxDescriptionLen caps the free-text description of an operation.
const MaxDescriptionLen = 255

// Operation is an immutable ledger entry recording a single deposit or
// withdrawal. BalanceAfter is a durable snapshot of the account balance
// immediately after the operation was applied; it is written once and never
// recomputed. The account's current balance must always equal the
// BalanceAfter of its most recent operation.
type Operation struct {
	ID           uint
	Reference    uuid.UUID
	AccountID    uint
	Kind         OperationKind
	Amount       money.Money
	BalanceAfter money.Money
	Description  string
	Timestamp    time.Time
}

// ValidateAmount checks an operation amount against the ledger's bounds.
func ValidateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if amount.Cmp(MaxOperationAmount) > 0 {
		return fmt.Errorf("%w: %s is over %s", ErrAmountTooLarge, amount, MaxOperationAmount)
	}
	return nil
}
