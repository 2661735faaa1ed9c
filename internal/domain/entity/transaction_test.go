package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

func TestNewDeposit(t *testing.T) {
	clk := testClock()

	t.Run("Valid deposit", func(t *testing.T) {
		txn, err := NewDeposit(1, 2500, "Deposit of 25.00", clk)
		require.NoError(t, err)
		assert.Equal(t, KindDeposit, txn.Kind)
		assert.Equal(t, int64(2500), txn.AmountCents)
		assert.Equal(t, "25.00", txn.Amount())
		assert.NotEmpty(t, txn.Reference)
		assert.Nil(t, txn.SessionID)
		assert.False(t, txn.IsCharge())
	})

	t.Run("Unique references", func(t *testing.T) {
		a, _ := NewDeposit(1, 100, "", clk)
		b, _ := NewDeposit(1, 100, "", clk)
		assert.NotEqual(t, a.Reference, b.Reference)
	})

	t.Run("Rejects non-positive amounts", func(t *testing.T) {
		_, err := NewDeposit(1, 0, "", clk)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		_, err = NewDeposit(1, -100, "", clk)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Rejects zero user", func(t *testing.T) {
		_, err := NewDeposit(0, 100, "", clk)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestNewSessionCharge(t *testing.T) {
	clk := testClock()

	t.Run("Stores the negated amount", func(t *testing.T) {
		txn, err := NewSessionCharge(1, 7, 600, "Session #7", clk)
		require.NoError(t, err)
		assert.Equal(t, KindSessionCharge, txn.Kind)
		assert.Equal(t, int64(-600), txn.AmountCents)
		assert.Equal(t, "-6.00", txn.Amount())
		require.NotNil(t, txn.SessionID)
		assert.Equal(t, uint64(7), *txn.SessionID)
		assert.True(t, txn.IsCharge())
	})

	t.Run("Zero charge is legal", func(t *testing.T) {
		txn, err := NewSessionCharge(1, 7, 0, "Drained balance", clk)
		require.NoError(t, err)
		assert.Equal(t, int64(0), txn.AmountCents)
	})

	t.Run("Rejects negative charge", func(t *testing.T) {
		_, err := NewSessionCharge(1, 7, -100, "", clk)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Rejects zero IDs", func(t *testing.T) {
		_, err := NewSessionCharge(0, 7, 100, "", clk)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		_, err = NewSessionCharge(1, 0, 100, "", clk)
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})
}
