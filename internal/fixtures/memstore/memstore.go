// Package memstore is an in-memory implementation of the repository
// contracts for tests. Do serializes through one mutex and rolls the store
// back when the unit function fails, mirroring the all-or-nothing transaction
// boundary of the real database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/repository"
)

// Store holds accounts and operations in memory.
type Store struct {
	mu            sync.Mutex
	accounts      map[uint]*account.Account
	operations    []*account.Operation
	nextAccountID uint
	nextOpID      uint
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts:      make(map[uint]*account.Account),
		nextAccountID: 1,
		nextOpID:      1,
	}
}

// UoW returns a unit of work bound to the store.
func (s *Store) UoW() repository.UnitOfWork {
	return &uow{store: s}
}

// SeedAccount inserts an account directly, assigning its ID.
func (s *Store) SeedAccount(a *account.Account) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	cp.ID = s.nextAccountID
	s.nextAccountID++
	s.accounts[cp.ID] = &cp
	out := cp
	return &out
}

type snapshot struct {
	accounts      map[uint]account.Account
	operations    []*account.Operation
	nextAccountID uint
	nextOpID      uint
}

func (s *Store) snapshot() snapshot {
	accounts := make(map[uint]account.Account, len(s.accounts))
	for id, a := range s.accounts {
		accounts[id] = *a
	}
	ops := make([]*account.Operation, len(s.operations))
	copy(ops, s.operations)
	return snapshot{
		accounts:      accounts,
		operations:    ops,
		nextAccountID: s.nextAccountID,
		nextOpID:      s.nextOpID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = make(map[uint]*account.Account, len(snap.accounts))
	for id, a := range snap.accounts {
		cp := a
		s.accounts[id] = &cp
	}
	s.operations = snap.operations
	s.nextAccountID = snap.nextAccountID
	s.nextOpID = snap.nextOpID
}

type uow struct {
	store *Store
	inTx  bool
}

// Do runs fn under the store mutex, restoring the pre-transaction state when
// fn fails.
func (u *uow) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.snapshot()
	if err := fn(&uow{store: u.store, inTx: true}); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}

func (u *uow) AccountRepository() repository.AccountRepository {
	return &accountRepo{guard{store: u.store, inTx: u.inTx}}
}

func (u *uow) OperationRepository() repository.OperationRepository {
	return &operationRepo{guard{store: u.store, inTx: u.inTx}}
}

// guard takes the store mutex for repositories used outside Do; inside Do
// the transaction already holds it.
type guard struct {
	store *Store
	inTx  bool
}

func (g guard) lock() func() {
	if g.inTx {
		return func() {}
	}
	g.store.mu.Lock()
	return g.store.mu.Unlock
}

type accountRepo struct {
	guard
}

func (r *accountRepo) Create(_ context.Context, a *account.Account) error {
	defer r.lock()()
	cp := *a
	cp.ID = r.store.nextAccountID
	r.store.nextAccountID++
	r.store.accounts[cp.ID] = &cp
	a.ID = cp.ID
	return nil
}

func (r *accountRepo) Get(_ context.Context, id uint) (*account.Account, error) {
	defer r.lock()()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *accountRepo) GetForUpdate(ctx context.Context, id uint) (*account.Account, error) {
	// Serialization is provided by the Do mutex.
	return r.Get(ctx, id)
}

func (r *accountRepo) UpdateBalance(_ context.Context, id uint, balance money.Money) error {
	defer r.lock()()
	a, ok := r.store.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Balance = balance
	return nil
}

func (r *accountRepo) SetInactive(_ context.Context, id uint) error {
	defer r.lock()()
	a, ok := r.store.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Active = false
	return nil
}

func (r *accountRepo) FindActive(
	_ context.Context,
	ownerID int64,
	kind account.Kind,
) (*account.Account, error) {
	defer r.lock()()
	for _, a := range r.store.accounts {
		if a.OwnerID == ownerID && a.Kind == kind && a.Active {
			cp := *a
			return &cp, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *accountRepo) ListActive(
	_ context.Context,
	filter repository.AccountFilter,
) ([]*account.Account, error) {
	defer r.lock()()
	var result []*account.Account
	for _, a := range r.store.accounts {
		if !a.Active {
			continue
		}
		if filter.OwnerID != nil && a.OwnerID != *filter.OwnerID {
			continue
		}
		cp := *a
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return page(result, filter.Skip, filter.Limit), nil
}

type operationRepo struct {
	guard
}

func (r *operationRepo) Create(_ context.Context, op *account.Operation) error {
	defer r.lock()()
	cp := *op
	cp.ID = r.store.nextOpID
	r.store.nextOpID++
	r.store.operations = append(r.store.operations, &cp)
	op.ID = cp.ID
	return nil
}

func (r *operationRepo) ListByAccount(
	ctx context.Context,
	accountID uint,
	limit, offset int,
) ([]*account.Operation, error) {
	return r.List(ctx, repository.OperationFilter{
		AccountID: &accountID,
		Skip:      offset,
		Limit:     limit,
	})
}

func (r *operationRepo) CountByAccount(_ context.Context, accountID uint) (int64, error) {
	defer r.lock()()
	var count int64
	for _, op := range r.store.operations {
		if op.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *operationRepo) SumWithdrawalsSince(
	_ context.Context,
	accountID uint,
	since time.Time,
) (money.Money, error) {
	defer r.lock()()
	total := money.Zero
	for _, op := range r.store.operations {
		if op.AccountID != accountID || op.Kind != account.OperationWithdrawal {
			continue
		}
		if op.Timestamp.Before(since) {
			continue
		}
		var err error
		total, err = total.Add(op.Amount)
		if err != nil {
			return money.Zero, err
		}
	}
	return total, nil
}

func (r *operationRepo) List(
	_ context.Context,
	filter repository.OperationFilter,
) ([]*account.Operation, error) {
	defer r.lock()()
	var result []*account.Operation
	for _, op := range r.store.operations {
		if filter.AccountID != nil && op.AccountID != *filter.AccountID {
			continue
		}
		if filter.Kind != nil && op.Kind != *filter.Kind {
			continue
		}
		cp := *op
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID > result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return page(result, filter.Skip, filter.Limit), nil
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
