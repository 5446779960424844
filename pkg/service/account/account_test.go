package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/felipecesargomes/banking-api/internal/fixtures/memstore"
	domain "github.com/felipecesargomes/banking-api/pkg/domain/account"
	"github.com/felipecesargomes/banking-api/pkg/domain/money"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	"github.com/felipecesargomes/banking-api/pkg/service/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*account.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return account.NewService(store.UoW(), slog.Default()), store
}

func TestCreateAccount(t *testing.T) {
	svc, _ := newService(t)

	acct, err := svc.CreateAccount(context.Background(),
		7, domain.KindChecking, money.FromCents(250_00), domain.DefaultDailyLimit)
	require.NoError(t, err)

	assert.NotZero(t, acct.ID)
	assert.Equal(t, int64(7), acct.OwnerID)
	assert.Equal(t, domain.KindChecking, acct.Kind)
	assert.Equal(t, int64(250_00), acct.Balance.Cents())
	assert.Equal(t, domain.DefaultDailyLimit, acct.DailyLimit)
	assert.True(t, acct.Active)
}

func TestCreateAccount_DuplicateActive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, 7, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, 7, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	assert.ErrorIs(t, err, domain.ErrDuplicateActiveAccount)

	// A different kind for the same owner is fine, as is the same kind for a
	// different owner.
	_, err = svc.CreateAccount(ctx, 7, domain.KindSavings, money.Zero, domain.DefaultDailyLimit)
	assert.NoError(t, err)
	_, err = svc.CreateAccount(ctx, 8, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	assert.NoError(t, err)
}

func TestCreateAccount_AfterDeactivation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.CreateAccount(ctx, 7, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, first.ID))

	// Deactivation frees the (owner, kind) slot.
	second, err := svc.CreateAccount(ctx, 7, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateAccount_InvalidInput(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, 0, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	assert.Error(t, err)

	_, err = svc.CreateAccount(ctx, 7, domain.KindChecking, money.FromCents(-1), domain.DefaultDailyLimit)
	assert.Error(t, err)

	overMax, err := domain.MaxDailyLimit.Add(money.FromCents(1))
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, 7, domain.KindChecking, money.Zero, overMax)
	assert.Error(t, err)
}

func TestDeactivate(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	acct, err := svc.CreateAccount(ctx, 7, domain.KindSavings, money.FromCents(99_00), domain.DefaultDailyLimit)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, acct.ID))

	got, err := store.UoW().AccountRepository().Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	// Soft delete: the balance is untouched.
	assert.Equal(t, int64(99_00), got.Balance.Cents())

	assert.ErrorIs(t, svc.Deactivate(ctx, acct.ID), domain.ErrAlreadyInactive)
}

func TestDeactivate_NotFound(t *testing.T) {
	svc, _ := newService(t)
	assert.ErrorIs(t, svc.Deactivate(context.Background(), 404), domain.ErrAccountNotFound)
}

func TestGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, 7, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, created.ID+1)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for owner := int64(1); owner <= 3; owner++ {
		_, err := svc.CreateAccount(ctx, owner, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
		require.NoError(t, err)
	}
	deactivated, err := svc.CreateAccount(ctx, 4, domain.KindChecking, money.Zero, domain.DefaultDailyLimit)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, deactivated.ID))

	all, err := svc.List(ctx, repository.AccountFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	owner := int64(2)
	byOwner, err := svc.List(ctx, repository.AccountFilter{OwnerID: &owner})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, owner, byOwner[0].OwnerID)

	paged, err := svc.List(ctx, repository.AccountFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}
