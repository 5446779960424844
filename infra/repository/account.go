package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository backed by the given
// *gorm.DB, which may be a transaction handle.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := accountToModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// The partial unique index backstops the service-level duplicate
		// check when two creations race past it.
		if isUniqueViolation(err, "idx_accounts_owner_kind_active") {
			return fmt.Errorf("%w: owner %d, kind %s",
				account.ErrDuplicateActiveAccount, a.OwnerID, a.Kind)
		}
		return err
	}
	a.ID = m.ID
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == constraint
}

func (r *accountRepository) Get(ctx context.Context, id uint) (*account.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id uint) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) UpdateBalance(ctx context.Context, id uint, balance money.Money) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance_cents", balance.Cents()).Error
}

func (r *accountRepository) SetInactive(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *accountRepository) FindActive(
	ctx context.Context,
	ownerID int64,
	kind account.Kind,
) (*account.Account, error) {
	var m Account
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND active", ownerID, string(kind)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(&m), nil
}

func (r *accountRepository) ListActive(
	ctx context.Context,
	filter repository.AccountFilter,
) ([]*account.Account, error) {
	q := r.db.WithContext(ctx).Where("active")
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	var models []Account
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*account.Account, 0, len(models))
	for i := range models {
		result = append(result, accountToDomain(&models[i]))
	}
	return result, nil
}
