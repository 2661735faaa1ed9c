package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestTokenMaker(t *testing.T) {
	clk := fixedClock{now: time.Now().UTC()}
	maker := NewTokenMaker("test-secret", 24*time.Hour, clk)

	t.Run("Round trip preserves identity", func(t *testing.T) {
		token, err := maker.Generate(42, true)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := maker.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("Non-admin claim survives", func(t *testing.T) {
		token, err := maker.Generate(7, false)
		require.NoError(t, err)

		claims, err := maker.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), claims.UserID)
		assert.False(t, claims.IsAdmin)
	})

	t.Run("Rejects a tampered token", func(t *testing.T) {
		token, err := maker.Generate(42, false)
		require.NoError(t, err)

		_, err = maker.Verify(token + "x")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Rejects a token signed with another key", func(t *testing.T) {
		other := NewTokenMaker("other-secret", 24*time.Hour, clk)
		token, err := other.Generate(42, false)
		require.NoError(t, err)

		_, err = maker.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Rejects an expired token", func(t *testing.T) {
		past := fixedClock{now: time.Now().UTC().Add(-48 * time.Hour)}
		expired := NewTokenMaker("test-secret", 24*time.Hour, past)

		token, err := expired.Generate(42, false)
		require.NoError(t, err)

		_, err = maker.Verify(token)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		_, err := maker.Verify("not-a-token")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}
