package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidInput        = 4001
	CodeInvalidAmount       = 4002
	CodeInsufficientBalance = 4003
	CodeUnauthorized        = 4010
	CodeForbidden           = 4030
	CodeNotFound            = 4040
	CodeMachineUnavailable  = 4090
	CodeSessionAlreadyEnded = 4091
	CodeMachineInUse        = 4092
	CodeUserHasHistory      = 4093
	CodeDuplicateUser       = 4094
	CodeRowLocked           = 4230

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrUserNotFound is returned when a user reference dangles
	ErrUserNotFound = errors.New("user not found")

	// ErrMachineNotFound is returned when a machine reference dangles
	ErrMachineNotFound = errors.New("machine not found")

	// ErrSessionNotFound is returned when a session reference dangles
	ErrSessionNotFound = errors.New("session not found")

	// ErrTransactionNotFound is returned when a transaction reference dangles
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned for missing or malformed fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount is returned for a non-positive or malformed money amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRate is returned for a non-positive hourly rate
	ErrInvalidRate = errors.New("hourly rate must be positive")

	// ErrInvalidCredentials is returned when login credentials do not match
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInsufficientBalance is returned when a session start requires a positive balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrMachineUnavailable is returned when starting a session on a machine that is not Available
	ErrMachineUnavailable = errors.New("machine is not available")

	// ErrSessionAlreadyEnded is returned when ending a session that is no longer active
	ErrSessionAlreadyEnded = errors.New("session has already ended")

	// ErrMachineInUse is returned when deleting or re-flagging a machine with an active session
	ErrMachineInUse = errors.New("machine has an active session")

	// ErrUserHasHistory is returned when deleting a user still referenced by sessions or transactions
	ErrUserHasHistory = errors.New("user is referenced by sessions or transactions")

	// ErrDuplicateUser is returned when a username or email is already taken
	ErrDuplicateUser = errors.New("user already exists")

	// ErrRowLocked is returned when a row is held by a concurrent operation
	ErrRowLocked = errors.New("record is locked by another operation")

	// ErrDatabaseConnection is returned when the persistent store is unreachable
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case IsNotFound(err):
		return CodeNotFound
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidRate):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrMachineUnavailable):
		return CodeMachineUnavailable
	case errors.Is(err, ErrSessionAlreadyEnded):
		return CodeSessionAlreadyEnded
	case errors.Is(err, ErrMachineInUse):
		return CodeMachineInUse
	case errors.Is(err, ErrUserHasHistory):
		return CodeUserHasHistory
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrRowLocked):
		return CodeRowLocked
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the HTTP status the transport layer should return
func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidRate),
		errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsNotFound checks if the error is any "not found" kind of error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMachineNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsConflict checks if the error is a state conflict (machine busy, session
// ended, referential integrity, duplicates, lock contention)
func IsConflict(err error) bool {
	return errors.Is(err, ErrMachineUnavailable) ||
		errors.Is(err, ErrSessionAlreadyEnded) ||
		errors.Is(err, ErrMachineInUse) ||
		errors.Is(err, ErrUserHasHistory) ||
		errors.Is(err, ErrDuplicateUser) ||
		errors.Is(err, ErrRowLocked)
}

// IsInsufficientBalance checks if the error is related to insufficient balance
func IsInsufficientBalance(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// InsufficientBalanceError provides detailed error information for a rejected session start
type InsufficientBalanceError struct {
	UserID      uint64
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: available %s", e.UserID, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		CurrBalance: currentBalance,
	}
}

// BillingError represents a failure inside the session close billing path
type BillingError struct {
	SessionID uint64
	UserID    uint64
	MachineID uint64
	Err       error
}

// Error implements the error interface for BillingError
func (e *BillingError) Error() string {
	return fmt.Sprintf("billing failed for session %d (user %d, machine %d): %v",
		e.SessionID, e.UserID, e.MachineID, e.Err)
}

// Unwrap returns the underlying error
func (e *BillingError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *BillingError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "billing_error",
		"session_id": e.SessionID,
		"user_id":    e.UserID,
		"machine_id": e.MachineID,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}
