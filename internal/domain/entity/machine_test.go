package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

func TestNewMachine(t *testing.T) {
	clk := testClock()

	t.Run("Valid machine", func(t *testing.T) {
		machine, err := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, err)
		assert.Equal(t, StatusAvailable, machine.Status)
		assert.Equal(t, "8.00", machine.HourlyRate())
	})

	t.Run("Rejects empty name", func(t *testing.T) {
		_, err := NewMachine("   ", TierStandard, 800, clk)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Rejects unknown tier", func(t *testing.T) {
		_, err := NewMachine("PC-01", MachineTier("Gold"), 800, clk)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})

	t.Run("Rejects non-positive rate", func(t *testing.T) {
		_, err := NewMachine("PC-01", TierStandard, 0, clk)
		assert.ErrorIs(t, err, errs.ErrInvalidRate)
		_, err = NewMachine("PC-01", TierStandard, -100, clk)
		assert.ErrorIs(t, err, errs.ErrInvalidRate)
	})
}

func TestMachineClaimRelease(t *testing.T) {
	clk := testClock()

	t.Run("Claim takes an available machine", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, machine.Claim(clk))
		assert.Equal(t, StatusInUse, machine.Status)
	})

	t.Run("Claim fails when already in use", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, machine.Claim(clk))
		assert.ErrorIs(t, machine.Claim(clk), errs.ErrMachineUnavailable)
	})

	t.Run("Claim fails under maintenance", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, machine.SetOperatorStatus(StatusMaintenance, clk))
		assert.ErrorIs(t, machine.Claim(clk), errs.ErrMachineUnavailable)
	})

	t.Run("Release returns the machine to available", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, machine.Claim(clk))
		machine.Release(clk)
		assert.Equal(t, StatusAvailable, machine.Status)
	})
}

func TestMachineSetOperatorStatus(t *testing.T) {
	clk := testClock()

	t.Run("Available to maintenance and back", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, machine.SetOperatorStatus(StatusMaintenance, clk))
		assert.Equal(t, StatusMaintenance, machine.Status)
		require.NoError(t, machine.SetOperatorStatus(StatusAvailable, clk))
		assert.Equal(t, StatusAvailable, machine.Status)
	})

	t.Run("Cannot force InUse", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		assert.ErrorIs(t, machine.SetOperatorStatus(StatusInUse, clk), errs.ErrInvalidInput)
	})

	t.Run("Cannot change a busy machine", func(t *testing.T) {
		machine, _ := NewMachine("PC-01", TierStandard, 800, clk)
		require.NoError(t, machine.Claim(clk))
		assert.ErrorIs(t, machine.SetOperatorStatus(StatusMaintenance, clk), errs.ErrMachineInUse)
	})
}

func TestTierAndStatusValidation(t *testing.T) {
	assert.True(t, IsValidTier("Standard"))
	assert.True(t, IsValidTier("Premium"))
	assert.True(t, IsValidTier("VIP"))
	assert.False(t, IsValidTier("standard"))
	assert.False(t, IsValidTier(""))

	assert.True(t, IsValidStatus("Available"))
	assert.True(t, IsValidStatus("InUse"))
	assert.True(t, IsValidStatus("Maintenance"))
	assert.False(t, IsValidStatus("Broken"))
}
