package repository

import (
	"context"

	"github.com/felipecesargomes/banking-api/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction's
// session, so a balance update and an operation insert either both commit or
// both roll back.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary, providing a UoW whose repositories
// are bound to the transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns an account repository bound to the current
// session.
func (u *UoW) AccountRepository() repository.AccountRepository {
	return NewAccountRepository(u.session())
}

// OperationRepository returns an operation repository bound to the current
// session.
func (u *UoW) OperationRepository() repository.OperationRepository {
	return NewOperationRepository(u.session())
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
