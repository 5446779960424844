// Package ledger implements the ledger consistency engine: deposits and
// withdrawals that atomically mutate an account's balance and append the
// operation recording the change, with balance sufficiency and the daily
// withdrawal limit enforced under concurrent access.
//
// Each mutating call runs inside one database transaction. The account row is
// loaded under an exclusive lock, so concurrent operations against the same
// account serialize while operations on different accounts proceed in
// parallel. The balance check, the limit check, the operation append and the
// balance update therefore all observe one consistent snapshot.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// DefaultStatementLimit is the statement page size when none is requested.
	DefaultStatementLimit = 50
	// MaxStatementLimit caps the statement page size.
	MaxStatementLimit = 500
	// DefaultListLimit is the operation listing page size when none is
	// requested.
	DefaultListLimit = 100

	defaultDepositDescription    = "Deposit"
	defaultWithdrawalDescription = "Withdrawal"
)

// Statement is a paginated view of an account's operation history plus the
// account's current state.
type Statement struct {
	Account         *account.Account
	Operations      []*account.Operation
	TotalOperations int64
}

// Service is the ledger engine. It is stateless between calls; the durable
// store is the only shared mutable resource.
type Service struct {
	uow           repository.UnitOfWork
	logger        *slog.Logger
	commitRetries int
	now           func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCommitRetries bounds the internal retries on transient commit
// conflicts.
func WithCommitRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.commitRetries = n
		}
	}
}

// WithClock overrides the engine's time source. For tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a ledger engine on top of the given unit of work.
func NewService(uow repository.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		uow:           uow,
		logger:        logger,
		commitRetries: 3,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deposit credits the account and records the operation, atomically.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uint,
	amount money.Money,
	description string,
) (*account.Operation, error) {
	if err := account.ValidateAmount(amount); err != nil {
		return nil, err
	}
	logger := s.logger.With("accountID", accountID, "amount", amount.String())

	if description == "" {
		description = defaultDepositDescription
	}

	var op *account.Operation
	err := s.applyWithRetry(ctx, func(uow repository.UnitOfWork) error {
		op = nil
		accounts := uow.AccountRepository()
		acct, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if !acct.Active {
			return account.ErrAccountInactive
		}
		newBalance, err := acct.Balance.Add(amount)
		if err != nil {
			return err
		}
		op = &account.Operation{
			Reference:    uuid.New(),
			AccountID:    acct.ID,
			Kind:         account.OperationDeposit,
			Amount:       amount,
			BalanceAfter: newBalance,
			Description:  description,
			Timestamp:    s.now().UTC(),
		}
		if err := uow.OperationRepository().Create(ctx, op); err != nil {
			return err
		}
		return accounts.UpdateBalance(ctx, acct.ID, newBalance)
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, err
	}
	logger.Info("deposit applied", "balanceAfter", op.BalanceAfter.String())
	return op, nil
}

// Withdraw debits the account and records the operation, atomically. It
// fails when the balance is insufficient or when the withdrawal would push
// the sum of today's withdrawals (UTC calendar day) past the account's daily
// limit. Deposits are never limited.
func (s *Service) Withdraw(
	ctx context.Context,
	accountID uint,
	amount money.Money,
	description string,
) (*account.Operation, error) {
	if err := account.ValidateAmount(amount); err != nil {
		return nil, err
	}
	logger := s.logger.With("accountID", accountID, "amount", amount.String())

	if description == "" {
		description = defaultWithdrawalDescription
	}

	var op *account.Operation
	err := s.applyWithRetry(ctx, func(uow repository.UnitOfWork) error {
		op = nil
		accounts := uow.AccountRepository()
		acct, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if !acct.Active {
			return account.ErrAccountInactive
		}
		if acct.Balance.Cmp(amount) < 0 {
			return fmt.Errorf("%w: current balance is %s",
				account.ErrInsufficientBalance, acct.Balance)
		}

		now := s.now().UTC()
		withdrawn, err := uow.OperationRepository().
			SumWithdrawalsSince(ctx, acct.ID, startOfDay(now))
		if err != nil {
			return err
		}
		projected, err := withdrawn.Add(amount)
		if err != nil {
			return err
		}
		if projected.Cmp(acct.DailyLimit) > 0 {
			return fmt.Errorf("%w: daily limit is %s, already withdrawn today %s",
				account.ErrDailyLimitExceeded, acct.DailyLimit, withdrawn)
		}

		newBalance, err := acct.Balance.Sub(amount)
		if err != nil {
			return err
		}
		op = &account.Operation{
			Reference:    uuid.New(),
			AccountID:    acct.ID,
			Kind:         account.OperationWithdrawal,
			Amount:       amount,
			BalanceAfter: newBalance,
			Description:  description,
			Timestamp:    now,
		}
		if err := uow.OperationRepository().Create(ctx, op); err != nil {
			return err
		}
		return accounts.UpdateBalance(ctx, acct.ID, newBalance)
	})
	if err != nil {
		logger.Error("withdrawal failed", "error", err)
		return nil, err
	}
	logger.Info("withdrawal applied", "balanceAfter", op.BalanceAfter.String())
	return op, nil
}

// Statement returns the account plus a page of its operations, newest first,
// and the total operation count. Deactivated accounts may still be queried:
// history access survives deactivation.
func (s *Service) Statement(
	ctx context.Context,
	accountID uint,
	limit, offset int,
) (*Statement, error) {
	if limit <= 0 {
		limit = DefaultStatementLimit
	}
	if limit > MaxStatementLimit {
		limit = MaxStatementLimit
	}
	if offset < 0 {
		offset = 0
	}

	acct, err := s.uow.AccountRepository().Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	operations := s.uow.OperationRepository()
	ops, err := operations.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := operations.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &Statement{Account: acct, Operations: ops, TotalOperations: total}, nil
}

// ListOperations returns operations matching the filter, newest first.
func (s *Service) ListOperations(
	ctx context.Context,
	filter repository.OperationFilter,
) ([]*account.Operation, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	return s.uow.OperationRepository().List(ctx, filter)
}

// applyWithRetry commits fn, retrying a bounded number of times on transient
// storage conflicts with a fresh read of account state each attempt. Semantic
// rejections are surfaced immediately and never retried.
func (s *Service) applyWithRetry(
	ctx context.Context,
	fn func(uow repository.UnitOfWork) error,
) error {
	var err error
	for attempt := 1; attempt <= s.commitRetries; attempt++ {
		err = s.uow.Do(ctx, fn)
		if err == nil || !isTransient(err) {
			return err
		}
		s.logger.Warn("transient storage conflict, retrying",
			"attempt", attempt, "error", err)
	}
	return fmt.Errorf("%w: %v", account.ErrUnavailable, err)
}

// isTransient reports whether err is a Postgres serialization failure or
// deadlock, the only conflicts worth a retry.
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
