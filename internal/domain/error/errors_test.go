package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"User not found", ErrUserNotFound, CodeNotFound},
		{"Machine not found", ErrMachineNotFound, CodeNotFound},
		{"Session not found", ErrSessionNotFound, CodeNotFound},
		{"Invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"Invalid rate", ErrInvalidRate, CodeInvalidAmount},
		{"Invalid input", ErrInvalidInput, CodeInvalidInput},
		{"Invalid credentials", ErrInvalidCredentials, CodeUnauthorized},
		{"Insufficient balance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"Machine unavailable", ErrMachineUnavailable, CodeMachineUnavailable},
		{"Session already ended", ErrSessionAlreadyEnded, CodeSessionAlreadyEnded},
		{"Machine in use", ErrMachineInUse, CodeMachineInUse},
		{"User has history", ErrUserHasHistory, CodeUserHasHistory},
		{"Duplicate user", ErrDuplicateUser, CodeDuplicateUser},
		{"Row locked", ErrRowLocked, CodeRowLocked},
		{"Internal", ErrInternalServer, CodeInternalServer},
		{"Unknown error", errors.New("boom"), CodeInternalServer},
		{"Wrapped keeps its code", fmt.Errorf("context: %w", ErrInvalidAmount), CodeInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Not found", ErrUserNotFound, http.StatusNotFound},
		{"Conflict", ErrMachineUnavailable, http.StatusConflict},
		{"Duplicate", ErrDuplicateUser, http.StatusConflict},
		{"Unauthorized", ErrInvalidCredentials, http.StatusUnauthorized},
		{"Bad amount", ErrInvalidAmount, http.StatusBadRequest},
		{"Insufficient balance", ErrInsufficientBalance, http.StatusBadRequest},
		{"Internal", ErrInternalServer, http.StatusInternalServerError},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, HTTPStatus(tc.err))
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(42, "0.00")

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, IsInsufficientBalance(err))
	assert.Contains(t, err.Error(), "user 42")
	assert.Equal(t, CodeInsufficientBalance, ErrorCode(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	var detailed *InsufficientBalanceError
	assert.True(t, errors.As(err, &detailed))
	assert.Equal(t, uint64(42), detailed.UserID)
}

func TestBillingError(t *testing.T) {
	err := &BillingError{SessionID: 7, UserID: 42, MachineID: 3, Err: ErrMachineNotFound}

	assert.ErrorIs(t, err, ErrMachineNotFound)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "session 7")

	fields := err.LogFields()
	assert.Equal(t, uint64(7), fields["session_id"])
	assert.Equal(t, CodeNotFound, fields["error_code"])
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsConflict(ErrSessionAlreadyEnded))
	assert.True(t, IsConflict(ErrRowLocked))
	assert.False(t, IsConflict(ErrUserNotFound))

	assert.True(t, IsNotFound(ErrTransactionNotFound))
	assert.False(t, IsNotFound(ErrInvalidInput))
}
