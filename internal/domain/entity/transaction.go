package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// TransactionKind represents the kind of a ledger transaction
type TransactionKind string

// Transaction kinds
const (
	KindDeposit       TransactionKind = "deposit"
	KindSessionCharge TransactionKind = "session_charge"
)

// Transaction is one append-only ledger row. The signed amount is positive
// for deposits and negative for session charges; the sum of a user's
// transaction amounts always equals their balance.
type Transaction struct {
	ID          uint64
	Reference   string // unique audit reference
	UserID      uint64
	Kind        TransactionKind
	AmountCents int64 // signed
	Description string
	SessionID   *uint64 // set only for session charges
	CreatedAt   time.Time
}

// NewDeposit creates a deposit transaction for a strictly positive amount
func NewDeposit(userID uint64, amountCents int64, description string, clock coreport.Clock) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	if amountCents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		Reference:   uuid.NewString(),
		UserID:      userID,
		Kind:        KindDeposit,
		AmountCents: amountCents,
		Description: description,
		CreatedAt:   clock.Now().UTC(),
	}, nil
}

// NewSessionCharge creates a charge transaction for a closed session. The
// stored amount is the negation of chargedCents; a zero charge is legal
// (fully drained balance) and still produces an audit row.
func NewSessionCharge(userID, sessionID uint64, chargedCents int64, description string, clock coreport.Clock) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	if sessionID == 0 {
		return nil, errs.ErrSessionNotFound
	}
	if chargedCents < 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		Reference:   uuid.NewString(),
		UserID:      userID,
		Kind:        KindSessionCharge,
		AmountCents: -chargedCents,
		Description: description,
		SessionID:   &sessionID,
		CreatedAt:   clock.Now().UTC(),
	}, nil
}

// Amount returns the signed amount as a string with 2 decimal places
func (t *Transaction) Amount() string {
	return FormatCents(t.AmountCents)
}

// IsCharge returns true if this transaction decreases the balance
func (t *Transaction) IsCharge() bool {
	return t.Kind == KindSessionCharge
}

// Clone returns a deep copy of the transaction
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.SessionID != nil {
		id := *t.SessionID
		c.SessionID = &id
	}
	return &c
}
