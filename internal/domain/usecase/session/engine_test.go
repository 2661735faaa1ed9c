package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence/memory"
)

// stepClock is a manually advanced clock for deterministic billing
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
func (nopLogger) Flush() error                 { return nil }

func seedUser(t *testing.T, store *memory.Store, clk *stepClock, balanceCents int64) *entity.User {
	t.Helper()
	user, err := entity.NewUser("alice", "alice@example.com", "hashed", entity.GenderFemale, false, clk)
	require.NoError(t, err)
	user.SetBalanceCents(balanceCents)
	return store.SeedUser(user)
}

func seedMachine(t *testing.T, store *memory.Store, clk *stepClock, rateCents int64) *entity.Machine {
	t.Helper()
	machine, err := entity.NewMachine("PC-01", entity.TierStandard, rateCents, clk)
	require.NoError(t, err)
	return store.SeedMachine(machine)
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts a session on an available machine", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)
		machine := seedMachine(t, store, clk, 800)

		sess, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)
		assert.True(t, sess.Active)
		assert.Equal(t, clk.Now(), sess.StartTime)

		got, err := store.Machines(ctx).GetByID(ctx, machine.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInUse, got.Status)
	})

	t.Run("Rejects when balance is zero", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 0)
		machine := seedMachine(t, store, clk, 800)

		_, err := engine.Start(ctx, user.ID, machine.ID)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

		// The machine was not claimed
		got, err := store.Machines(ctx).GetByID(ctx, machine.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAvailable, got.Status)
	})

	t.Run("Rejects a machine under maintenance", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)

		machine, err := entity.NewMachine("PC-01", entity.TierStandard, 800, clk)
		require.NoError(t, err)
		require.NoError(t, machine.SetOperatorStatus(entity.StatusMaintenance, clk))
		machine = store.SeedMachine(machine)

		_, err = engine.Start(ctx, user.ID, machine.ID)
		assert.ErrorIs(t, err, errs.ErrMachineUnavailable)
	})

	t.Run("Rejects an already claimed machine", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)
		machine := seedMachine(t, store, clk, 800)

		_, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		_, err = engine.Start(ctx, user.ID, machine.ID)
		assert.ErrorIs(t, err, errs.ErrMachineUnavailable)
	})

	t.Run("Unknown user rolls back the machine claim", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		machine := seedMachine(t, store, clk, 800)

		_, err := engine.Start(ctx, 99, machine.ID)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		got, err := store.Machines(ctx).GetByID(ctx, machine.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAvailable, got.Status)

		sessions, err := store.Sessions(ctx).List(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("Unknown machine", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)

		_, err := engine.Start(ctx, user.ID, 99)
		assert.ErrorIs(t, err, errs.ErrMachineNotFound)
	})

	t.Run("Concurrent starts on one machine admit exactly one", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		machine := seedMachine(t, store, clk, 800)

		const workers = 8
		users := make([]*entity.User, workers)
		for i := range users {
			u, err := entity.NewUser("user", "u@example.com", "hashed", entity.GenderMale, false, clk)
			require.NoError(t, err)
			u.SetBalanceCents(1000)
			users[i] = store.SeedUser(u)
		}

		var wg sync.WaitGroup
		results := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(userID uint64) {
				defer wg.Done()
				_, err := engine.Start(ctx, userID, machine.ID)
				results <- err
			}(users[i].ID)
		}
		wg.Wait()
		close(results)

		var succeeded, rejected int
		for err := range results {
			if err == nil {
				succeeded++
			} else {
				assert.ErrorIs(t, err, errs.ErrMachineUnavailable)
				rejected++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, workers-1, rejected)
	})
}

func TestEnd(t *testing.T) {
	ctx := context.Background()

	t.Run("Bills elapsed time rounded up to quarter hours", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)
		machine := seedMachine(t, store, clk, 800)

		sess, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		clk.Advance(40 * time.Minute)

		closed, txn, err := engine.End(ctx, sess.ID)
		require.NoError(t, err)

		assert.False(t, closed.Active)
		assert.Equal(t, "0.75", closed.DurationHours())
		assert.Equal(t, "6.00", closed.AmountCharged())
		assert.Equal(t, int64(-600), txn.AmountCents)
		require.NotNil(t, txn.SessionID)
		assert.Equal(t, sess.ID, *txn.SessionID)

		gotUser, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(400), gotUser.BalanceCents())

		gotMachine, err := store.Machines(ctx).GetByID(ctx, machine.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAvailable, gotMachine.Status)
	})

	t.Run("Caps the charge at the balance", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 200)
		machine := seedMachine(t, store, clk, 800)

		sess, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		// 61 minutes bills 1.25h: raw charge 10.00, balance only 2.00
		clk.Advance(61 * time.Minute)

		closed, txn, err := engine.End(ctx, sess.ID)
		require.NoError(t, err)

		assert.Equal(t, "1.25", closed.DurationHours())
		assert.Equal(t, "2.00", closed.AmountCharged())
		assert.Equal(t, int64(-200), txn.AmountCents)

		gotUser, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), gotUser.BalanceCents())
	})

	t.Run("Zero elapsed time bills zero", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)
		machine := seedMachine(t, store, clk, 800)

		sess, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		closed, txn, err := engine.End(ctx, sess.ID)
		require.NoError(t, err)

		assert.Equal(t, "0.00", closed.DurationHours())
		assert.Equal(t, "0.00", closed.AmountCharged())
		assert.Equal(t, int64(0), txn.AmountCents)

		gotUser, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), gotUser.BalanceCents())
	})

	t.Run("One second bills one quarter", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)
		machine := seedMachine(t, store, clk, 800)

		sess, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		clk.Advance(time.Second)

		closed, _, err := engine.End(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.25", closed.DurationHours())
		assert.Equal(t, "2.00", closed.AmountCharged())
	})

	t.Run("Ending twice fails and nothing double-charges", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})
		user := seedUser(t, store, clk, 1000)
		machine := seedMachine(t, store, clk, 800)

		sess, err := engine.Start(ctx, user.ID, machine.ID)
		require.NoError(t, err)

		clk.Advance(15 * time.Minute)
		_, _, err = engine.End(ctx, sess.ID)
		require.NoError(t, err)

		_, _, err = engine.End(ctx, sess.ID)
		assert.ErrorIs(t, err, errs.ErrSessionAlreadyEnded)

		gotUser, err := store.Users(ctx).GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(800), gotUser.BalanceCents())
	})

	t.Run("Unknown session", func(t *testing.T) {
		store := memory.NewStore()
		clk := newStepClock()
		engine := NewEngine(store, clk, nopLogger{})

		_, _, err := engine.End(ctx, 42)
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clk := newStepClock()
	engine := NewEngine(store, clk, nopLogger{})
	user := seedUser(t, store, clk, 10000)

	machineA := seedMachine(t, store, clk, 800)
	b, err := entity.NewMachine("PC-02", entity.TierPremium, 1200, clk)
	require.NoError(t, err)
	machineB := store.SeedMachine(b)

	first, err := engine.Start(ctx, user.ID, machineA.ID)
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)
	second, err := engine.Start(ctx, user.ID, machineB.ID)
	require.NoError(t, err)

	clk.Advance(10 * time.Minute)
	_, _, err = engine.End(ctx, first.ID)
	require.NoError(t, err)

	all, err := engine.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Most recent start first
	assert.Equal(t, second.ID, all[0].ID)

	active, err := engine.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}
