package repository

import (
	"context"
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	"gorm.io/gorm"
)

type operationRepository struct {
	db *gorm.DB
}

// NewOperationRepository creates an operation repository backed by the given
// *gorm.DB, which may be a transaction handle.
func NewOperationRepository(db *gorm.DB) repository.OperationRepository {
	return &operationRepository{db: db}
}

func (r *operationRepository) Create(ctx context.Context, op *account.Operation) error {
	m := operationToModel(op)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	op.ID = m.ID
	return nil
}

func (r *operationRepository) ListByAccount(
	ctx context.Context,
	accountID uint,
	limit, offset int,
) ([]*account.Operation, error) {
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	var models []Operation
	if err := q.Order("timestamp DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainOperations(models), nil
}

func (r *operationRepository) CountByAccount(ctx context.Context, accountID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Operation{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count, err
}

func (r *operationRepository) SumWithdrawalsSince(
	ctx context.Context,
	accountID uint,
	since time.Time,
) (money.Money, error) {
	var totalCents int64
	err := r.db.WithContext(ctx).
		Model(&Operation{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("account_id = ? AND kind = ? AND timestamp >= ?",
			accountID, string(account.OperationWithdrawal), since).
		Scan(&totalCents).Error
	if err != nil {
		return money.Zero, err
	}
	return money.FromCents(totalCents), nil
}

func (r *operationRepository) List(
	ctx context.Context,
	filter repository.OperationFilter,
) ([]*account.Operation, error) {
	q := r.db.WithContext(ctx).Model(&Operation{})
	if filter.AccountID != nil {
		q = q.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Kind != nil {
		q = q.Where("kind = ?", string(*filter.Kind))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	var models []Operation
	if err := q.Order("timestamp DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainOperations(models), nil
}

func toDomainOperations(models []Operation) []*account.Operation {
	result := make([]*account.Operation, 0, len(models))
	for i := range models {
		result = append(result, operationToDomain(&models[i]))
	}
	return result
}
