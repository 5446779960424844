package repository

import (
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/google/uuid"
)

// Account is the database record for a bank account. Monetary columns store
// cents so the database never holds a rounded float.
type Account struct {
	ID              uint   `gorm:"primaryKey"`
	OwnerID         int64  `gorm:"index;not null"`
	Kind            string `gorm:"type:varchar(16);not null;default:'checking'"`
	BalanceCents    int64  `gorm:"not null;default:0"`
	DailyLimitCents int64  `gorm:"not null"`
	Active          bool   `gorm:"not null;default:true"`
	CreatedAt       time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Operation is the database record for a ledger entry. Rows are append-only:
// nothing in the codebase updates or deletes them.
type Operation struct {
	ID                uint      `gorm:"primaryKey"`
	Reference         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	AccountID         uint      `gorm:"index;not null"`
	Kind              string    `gorm:"type:varchar(16);not null;index"`
	AmountCents       int64     `gorm:"not null"`
	BalanceAfterCents int64     `gorm:"not null"`
	Description       string    `gorm:"type:varchar(255)"`
	Timestamp         time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the Operation model.
func (Operation) TableName() string {
	return "operations"
}

func accountToDomain(m *Account) *account.Account {
	return &account.Account{
		ID:         m.ID,
		OwnerID:    m.OwnerID,
		Kind:       account.Kind(m.Kind),
		Balance:    money.FromCents(m.BalanceCents),
		DailyLimit: money.FromCents(m.DailyLimitCents),
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
	}
}

func accountToModel(a *account.Account) Account {
	return Account{
		ID:              a.ID,
		OwnerID:         a.OwnerID,
		Kind:            string(a.Kind),
		BalanceCents:    a.Balance.Cents(),
		DailyLimitCents: a.DailyLimit.Cents(),
		Active:          a.Active,
		CreatedAt:       a.CreatedAt,
	}
}

func operationToDomain(m *Operation) *account.Operation {
	return &account.Operation{
		ID:           m.ID,
		Reference:    m.Reference,
		AccountID:    m.AccountID,
		Kind:         account.OperationKind(m.Kind),
		Amount:       money.FromCents(m.AmountCents),
		BalanceAfter: money.FromCents(m.BalanceAfterCents),
		Description:  m.Description,
		Timestamp:    m.Timestamp,
	}
}

func operationToModel(op *account.Operation) Operation {
	return Operation{
		ID:                op.ID,
		Reference:         op.Reference,
		AccountID:         op.AccountID,
		Kind:              string(op.Kind),
		AmountCents:       op.Amount.Cents(),
		BalanceAfterCents: op.BalanceAfter.Cents(),
		Description:       op.Description,
		Timestamp:         op.Timestamp,
	}
}
