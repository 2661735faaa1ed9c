package entity

import (
	"strings"
	"time"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// Gender values accepted at signup
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User represents a member account with a prepaid balance.
// The balance only moves through Deposit and Withdraw so every mutation
// can be paired with a ledger transaction.
type User struct {
	ID           uint64
	Username     string
	Email        string
	PasswordHash string // opaque credential, hashed by the auth collaborator
	Gender       string
	AvatarURL    string
	IsAdmin      bool
	balanceCents int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new user with a zero balance
func NewUser(username, email, passwordHash, gender string, isAdmin bool, clock coreport.Clock) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errs.ErrInvalidInput
	}
	if email == "" {
		return nil, errs.ErrInvalidInput
	}
	if passwordHash == "" {
		return nil, errs.ErrInvalidInput
	}
	if gender != GenderMale && gender != GenderFemale {
		return nil, errs.ErrInvalidInput
	}

	now := clock.Now()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Gender:       gender,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// BalanceCents returns the current balance in cents
func (u *User) BalanceCents() int64 {
	return u.balanceCents
}

// Balance returns the balance as a string with 2 decimal places
func (u *User) Balance() string {
	return FormatCents(u.balanceCents)
}

// SetBalanceCents restores the balance from storage (repository use only)
func (u *User) SetBalanceCents(cents int64) {
	u.balanceCents = cents
}

// Deposit adds a strictly positive amount to the balance
func (u *User) Deposit(cents int64, clock coreport.Clock) error {
	if cents <= 0 {
		return errs.ErrInvalidAmount
	}
	u.balanceCents += cents
	u.UpdatedAt = clock.Now()
	return nil
}

// Withdraw removes up to the full balance. The session close path caps the
// charge at the balance before calling, so exceeding it here is a bug.
func (u *User) Withdraw(cents int64, clock coreport.Clock) error {
	if cents < 0 {
		return errs.ErrInvalidAmount
	}
	if cents > u.balanceCents {
		return errs.ErrInsufficientBalance
	}
	u.balanceCents -= cents
	u.UpdatedAt = clock.Now()
	return nil
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	c := *u
	return &c
}
