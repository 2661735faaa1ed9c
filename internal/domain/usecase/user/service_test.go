package user

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

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	clk := fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(store, clk, nopLogger{}), store
}

func validRequest() CreateRequest {
	return CreateRequest{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Gender:       entity.GenderFemale,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates with zero balance and no ledger rows", func(t *testing.T) {
		svc, store := newService(t)

		user, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, int64(0), user.BalanceCents())

		rows, err := store.Transactions(ctx).ListByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Opening balance is recorded as a deposit", func(t *testing.T) {
		svc, store := newService(t)

		req := validRequest()
		req.InitialBalance = "50.00"

		user, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), user.BalanceCents())

		rows, err := store.Transactions(ctx).ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, entity.KindDeposit, rows[0].Kind)
		assert.Equal(t, int64(5000), rows[0].AmountCents)
		assert.Equal(t, "Opening balance of 50.00", rows[0].Description)

		// Ledger invariant holds from the first row
		sum, err := store.Transactions(ctx).SumByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.BalanceCents(), sum)
	})

	t.Run("Rejects duplicate username", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		req := validRequest()
		req.Email = "other@example.com"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("Rejects invalid input", func(t *testing.T) {
		svc, _ := newService(t)

		req := validRequest()
		req.Gender = "other"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)

		req = validRequest()
		req.InitialBalance = "-10.00"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes a user without history", func(t *testing.T) {
		svc, _ := newService(t)

		user, err := svc.Create(ctx, validRequest())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, user.ID))

		_, err = svc.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Rejects a user with ledger history", func(t *testing.T) {
		svc, _ := newService(t)

		req := validRequest()
		req.InitialBalance = "10.00"
		user, err := svc.Create(ctx, req)
		require.NoError(t, err)

		err = svc.Delete(ctx, user.ID)
		assert.ErrorIs(t, err, errs.ErrUserHasHistory)

		// Still present
		_, err = svc.GetByID(ctx, user.ID)
		assert.NoError(t, err)
	})

	t.Run("Unknown user", func(t *testing.T) {
		svc, _ := newService(t)
		assert.ErrorIs(t, svc.Delete(ctx, 99), errs.ErrUserNotFound)
	})
}

func TestGetByUsername(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	got, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
