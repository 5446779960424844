// Package repository defines the data-access contracts consumed by the
// service layer: the account store, the append-only operation ledger, and the
// unit of work that binds them to a single database transaction.
package repository

import (
	"context"
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	OwnerID *int64
	Skip    int
	Limit   int
}

// OperationFilter narrows operation listings.
type OperationFilter struct {
	AccountID *uint
	Kind      *account.OperationKind
	Skip      int
	Limit     int
}

// AccountRepository is the durable store of accounts and their mutable
// balance/active fields.
type AccountRepository interface {
	Create(ctx context.Context, a *account.Account) error
	Get(ctx context.Context, id uint) (*account.Account, error)

	// GetForUpdate loads the account under an exclusive row lock, serializing
	// concurrent ledger operations against the same account for the remainder
	// of the enclosing transaction. Must be called inside a UnitOfWork.
	GetForUpdate(ctx context.Context, id uint) (*account.Account, error)

	UpdateBalance(ctx context.Context, id uint, balance money.Money) error
	SetInactive(ctx context.Context, id uint) error

	// FindActive returns the active account for (ownerID, kind), or
	// account.ErrAccountNotFound if none exists.
	FindActive(ctx context.Context, ownerID int64, kind account.Kind) (*account.Account, error)

	// ListActive returns active accounts ordered by creation time descending.
	ListActive(ctx context.Context, filter AccountFilter) ([]*account.Account, error)
}

// OperationRepository is the append-only ledger of deposits and withdrawals.
// Entries are created once and never mutated or deleted.
type OperationRepository interface {
	Create(ctx context.Context, op *account.Operation) error

	// ListByAccount returns an account's operations ordered by timestamp
	// descending.
	ListByAccount(ctx context.Context, accountID uint, limit, offset int) ([]*account.Operation, error)

	CountByAccount(ctx context.Context, accountID uint) (int64, error)

	// SumWithdrawalsSince totals the withdrawal amounts recorded for the
	// account at or after the given instant. Returns zero money if none.
	SumWithdrawalsSince(ctx context.Context, accountID uint, since time.Time) (money.Money, error)

	// List returns operations ordered by timestamp descending.
	List(ctx context.Context, filter OperationFilter) ([]*account.Operation, error)
}

// UnitOfWork runs a function inside one database transaction and hands it
// repositories bound to that transaction, so that the balance mutation and
// the operation append commit or roll back as a single atomic unit.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error the
	// transaction is rolled back and the error is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() AccountRepository
	OperationRepository() OperationRepository
}
