// Package account holds the ledger domain model: bank accounts, the immutable
// operations recorded against them, and the error taxonomy shared by the
// service layer.
package account

import (
	"fmt"
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/money"
)

// Kind identifies the type of a bank account.
type Kind string

const (
	// KindChecking is a checking account.
	KindChecking Kind = "checking"
	// KindSavings is a savings account.
	KindSavings Kind = "savings"
)

// ParseKind validates a raw account kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindChecking, KindSavings:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown account kind %q", s)
	}
}

// MaxDailyLimit is the hard cap on any account's configurable daily
// withdrawal limit.
var MaxDailyLimit = money.FromCents(10_000_00)

// DefaultDailyLimit is applied when account creation does not specify a limit.
var DefaultDailyLimit = money.FromCents(1_000_00)

// Account is the ledger subject: it holds a balance and a daily withdrawal
// limit. Balance is mutated only by the ledger engine, atomically with the
// operation recording the change; Active is flipped off once by deactivation
// and never back on.
//
// Invariants:
//   - Balance is never negative.
//   - DailyLimit is positive and at most MaxDailyLimit.
//   - At most one active account exists per (OwnerID, Kind) pair.
type Account struct {
	ID         uint
	OwnerID    int64
	Kind       Kind
	Balance    money.Money
	DailyLimit money.Money
	Active     bool
	CreatedAt  time.Time
}

// Builder constructs Account values, enforcing creation invariants in Build.
type Builder struct {
	ownerID    int64
	kind       Kind
	balance    money.Money
	dailyLimit money.Money
	createdAt  time.Time
}

// New returns a Builder with the defaults used at creation time: a checking
// account with zero balance and the default daily limit.
func New() *Builder {
	return &Builder{
		kind:       KindChecking,
		dailyLimit: DefaultDailyLimit,
		createdAt:  time.Now().UTC(),
	}
}

// WithOwnerID sets the owning user. Mandatory.
func (b *Builder) WithOwnerID(ownerID int64) *Builder {
	b.ownerID = ownerID
	return b
}

// WithKind sets the account kind.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithInitialBalance sets the opening balance.
func (b *Builder) WithInitialBalance(balance money.Money) *Builder {
	b.balance = balance
	return b
}

// WithDailyLimit sets the daily withdrawal limit.
func (b *Builder) WithDailyLimit(limit money.Money) *Builder {
	b.dailyLimit = limit
	return b
}

// WithCreatedAt overrides the creation timestamp. For hydration and tests.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build validates the creation invariants and returns the Account, active and
// without an ID (the store assigns one on insert).
func (b *Builder) Build() (*Account, error) {
	if b.ownerID <= 0 {
		return nil, fmt.Errorf("owner id must be positive, got %d", b.ownerID)
	}
	if _, err := ParseKind(string(b.kind)); err != nil {
		return nil, err
	}
	if b.balance.IsNegative() {
		return nil, fmt.Errorf("initial balance must not be negative, got %s", b.balance)
	}
	if !b.dailyLimit.IsPositive() {
		return nil, fmt.Errorf("daily limit must be positive, got %s", b.dailyLimit)
	}
	if b.dailyLimit.Cmp(MaxDailyLimit) > 0 {
		return nil, fmt.Errorf("daily limit %s exceeds the maximum of %s", b.dailyLimit, MaxDailyLimit)
	}
	return &Account{
		OwnerID:    b.ownerID,
		Kind:       b.kind,
		Balance:    b.balance,
		DailyLimit: b.dailyLimit,
		Active:     true,
		CreatedAt:  b.createdAt,
	}, nil
}
