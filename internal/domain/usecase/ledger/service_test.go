package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence/memory"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Flush() error                 { return nil }

func newService(t *testing.T) (*Service, *memory.Store, *entity.User) {
	t.Helper()
	store := memory.NewStore()
	clk := fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(store, clk, nopLogger{})

	user, err := entity.NewUser("alice", "alice@example.com", "hashed", entity.GenderFemale, false, clk)
	require.NoError(t, err)
	return svc, store, store.SeedUser(user)
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("Adds funds and appends the ledger row", func(t *testing.T) {
		svc, store, user := newService(t)

		txn, err := svc.Deposit(ctx, user.ID, "25.00")
		require.NoError(t, err)
		assert.Equal(t, entity.KindDeposit, txn.Kind)
		assert.Equal(t, int64(2500), txn.AmountCents)
		assert.Equal(t, "Deposit of 25.00", txn.Description)
		assert.NotEmpty(t, txn.Reference)

		got, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2500), got.BalanceCents())
	})

	t.Run("Deposits accumulate", func(t *testing.T) {
		svc, store, user := newService(t)

		_, err := svc.Deposit(ctx, user.ID, "10.00")
		require.NoError(t, err)
		_, err = svc.Deposit(ctx, user.ID, "0.50")
		require.NoError(t, err)

		got, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "10.50", got.Balance())

		rows, err := svc.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("Rejects invalid amounts", func(t *testing.T) {
		svc, store, user := newService(t)

		for _, amount := range []string{"0", "0.00", "-5.00", "abc", "1.234", ""} {
			_, err := svc.Deposit(ctx, user.ID, amount)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "amount %q", amount)
		}

		got, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.BalanceCents())
	})

	t.Run("Unknown user leaves no ledger row", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Deposit(ctx, 99, "10.00")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		rows, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestVerifyBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Balance equals transaction sum", func(t *testing.T) {
		svc, _, user := newService(t)

		_, err := svc.Deposit(ctx, user.ID, "10.00")
		require.NoError(t, err)
		_, err = svc.Deposit(ctx, user.ID, "2.50")
		require.NoError(t, err)

		balance, sum, err := svc.VerifyBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1250), balance)
		assert.Equal(t, balance, sum)
	})

	t.Run("Fresh user verifies at zero", func(t *testing.T) {
		svc, _, user := newService(t)

		balance, sum, err := svc.VerifyBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
		assert.Equal(t, int64(0), sum)
	})

	t.Run("Unknown user", func(t *testing.T) {
		svc, _, _ := newService(t)
		_, _, err := svc.VerifyBalance(ctx, 99)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Newest first", func(t *testing.T) {
		svc, _, user := newService(t)

		first, err := svc.Deposit(ctx, user.ID, "1.00")
		require.NoError(t, err)
		second, err := svc.Deposit(ctx, user.ID, "2.00")
		require.NoError(t, err)

		rows, err := svc.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, second.Reference, rows[0].Reference)
		assert.Equal(t, first.Reference, rows[1].Reference)
	})

	t.Run("Unknown user", func(t *testing.T) {
		svc, _, _ := newService(t)
		_, err := svc.ListByUser(ctx, 99)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
