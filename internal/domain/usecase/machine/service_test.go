package machine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence/memory"
	sessionUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/session"
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

func newService(t *testing.T) (*Service, *memory.Store, fixedClock) {
	t.Helper()
	store := memory.NewStore()
	clk := fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(store, clk, nopLogger{}), store, clk
}

func strPtr(s string) *string { return &s }

func TestCreateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid machine", func(t *testing.T) {
		svc, _, _ := newService(t)

		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)
		assert.NotZero(t, machine.ID)
		assert.Equal(t, entity.StatusAvailable, machine.Status)
		assert.Equal(t, int64(800), machine.HourlyRateCents)
	})

	t.Run("Rejects bad rates", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(ctx, "PC-01", "Standard", "0")
		assert.ErrorIs(t, err, errs.ErrInvalidRate)
		_, err = svc.Create(ctx, "PC-01", "Standard", "-5.00")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		_, err = svc.Create(ctx, "PC-01", "Standard", "abc")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Rejects unknown tier", func(t *testing.T) {
		svc, _, _ := newService(t)
		_, err := svc.Create(ctx, "PC-01", "Gold", "8.00")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestUpdateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies partial changes", func(t *testing.T) {
		svc, _, _ := newService(t)
		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)

		updated, err := svc.Update(ctx, machine.ID, UpdateRequest{
			Name:       strPtr("PC-01b"),
			HourlyRate: strPtr("9.50"),
		})
		require.NoError(t, err)
		assert.Equal(t, "PC-01b", updated.Name)
		assert.Equal(t, int64(950), updated.HourlyRateCents)
		// Untouched fields survive
		assert.Equal(t, entity.TierStandard, updated.Tier)
	})

	t.Run("Status change through operator rules", func(t *testing.T) {
		svc, _, _ := newService(t)
		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)

		updated, err := svc.SetStatus(ctx, machine.ID, "Maintenance")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusMaintenance, updated.Status)

		updated, err = svc.SetStatus(ctx, machine.ID, "Available")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAvailable, updated.Status)
	})

	t.Run("Cannot force InUse", func(t *testing.T) {
		svc, _, _ := newService(t)
		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, machine.ID, "InUse")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Cannot change a busy machine's status", func(t *testing.T) {
		svc, store, clk := newService(t)
		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)

		user, err := entity.NewUser("bob", "bob@example.com", "hashed", entity.GenderMale, false, clk)
		require.NoError(t, err)
		user.SetBalanceCents(1000)
		user = store.SeedUser(user)

		engine := sessionUseCase.NewEngine(store, clk, nopLogger{})
		_, err = engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, machine.ID, "Maintenance")
		assert.ErrorIs(t, err, errs.ErrMachineInUse)
	})

	t.Run("Unknown machine", func(t *testing.T) {
		svc, _, _ := newService(t)
		_, err := svc.Update(ctx, 99, UpdateRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, errs.ErrMachineNotFound)
	})
}

func TestDeleteMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes an idle machine", func(t *testing.T) {
		svc, _, _ := newService(t)
		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, machine.ID))
		_, err = svc.Get(ctx, machine.ID)
		assert.ErrorIs(t, err, errs.ErrMachineNotFound)
	})

	t.Run("Rejects a machine with an active session", func(t *testing.T) {
		svc, store, clk := newService(t)
		machine, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
		require.NoError(t, err)

		user, err := entity.NewUser("bob", "bob@example.com", "hashed", entity.GenderMale, false, clk)
		require.NoError(t, err)
		user.SetBalanceCents(1000)
		user = store.SeedUser(user)

		engine := sessionUseCase.NewEngine(store, clk, nopLogger{})
		_, err = engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		err = svc.Delete(ctx, machine.ID)
		assert.ErrorIs(t, err, errs.ErrMachineInUse)

		// Still present
		_, err = svc.Get(ctx, machine.ID)
		assert.NoError(t, err)
	})

	t.Run("Unknown machine", func(t *testing.T) {
		svc, _, _ := newService(t)
		assert.ErrorIs(t, svc.Delete(ctx, 99), errs.ErrMachineNotFound)
	})
}

func TestListMachines(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	a, err := svc.Create(ctx, "PC-01", "Standard", "8.00")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "PC-02", "VIP", "15.00")
	require.NoError(t, err)

	machines, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, machines, 2)
	assert.Equal(t, a.ID, machines[0].ID)
	assert.Equal(t, b.ID, machines[1].ID)
}
