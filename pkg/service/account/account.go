// Package account provides the account lifecycle: creation with the
// one-active-account-per-(owner, kind) constraint, soft deactivation, and
// read-only queries.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/repository"
)

// DefaultListLimit is the account listing page size when none is requested.
const DefaultListLimit = 50

// Service manages account creation, deactivation and lookups.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a lifecycle service on top of the given unit of work.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateAccount creates an active account for the owner. It fails with
// account.ErrDuplicateActiveAccount when the owner already holds an active
// account of the same kind; the duplicate check and the insert share one
// transaction, and a partial unique index backs the invariant at the schema
// level.
func (s *Service) CreateAccount(
	ctx context.Context,
	ownerID int64,
	kind account.Kind,
	initialBalance money.Money,
	dailyLimit money.Money,
) (*account.Account, error) {
	logger := s.logger.With("ownerID", ownerID, "kind", kind)

	var created *account.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.AccountRepository()

		_, err := repo.FindActive(ctx, ownerID, kind)
		switch {
		case err == nil:
			return fmt.Errorf("%w: owner %d, kind %s",
				account.ErrDuplicateActiveAccount, ownerID, kind)
		case !errors.Is(err, account.ErrAccountNotFound):
			return err
		}

		created, err = account.New().
			WithOwnerID(ownerID).
			WithKind(kind).
			WithInitialBalance(initialBalance).
			WithDailyLimit(dailyLimit).
			Build()
		if err != nil {
			return err
		}
		return repo.Create(ctx, created)
	})
	if err != nil {
		logger.Error("account creation failed", "error", err)
		return nil, err
	}
	logger.Info("account created", "accountID", created.ID)
	return created, nil
}

// Deactivate soft-deletes the account. The balance and the operation history
// are untouched; the flag never reverts to active.
func (s *Service) Deactivate(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.AccountRepository()
		acct, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !acct.Active {
			return account.ErrAlreadyInactive
		}
		return repo.SetInactive(ctx, id)
	})
	if err != nil {
		s.logger.Error("deactivation failed", "accountID", id, "error", err)
		return err
	}
	s.logger.Info("account deactivated", "accountID", id)
	return nil
}

// Get returns the account, active or not.
func (s *Service) Get(ctx context.Context, id uint) (*account.Account, error) {
	return s.uow.AccountRepository().Get(ctx, id)
}

// List returns active accounts ordered by creation time descending.
func (s *Service) List(
	ctx context.Context,
	filter repository.AccountFilter,
) ([]*account.Account, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	return s.uow.AccountRepository().ListActive(ctx, filter)
}
