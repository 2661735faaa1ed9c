package entity

import (
	"time"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// Session represents one timed usage period of one machine by one user.
// Invariant: Active == (EndTime == nil) == (BilledQuarters == nil).
// A session is mutated exactly once, at Close, and is immutable after.
type Session struct {
	ID                 uint64
	UserID             uint64
	MachineID          uint64
	StartTime          time.Time
	EndTime            *time.Time
	BilledQuarters     *int64 // billed duration in quarter-hour increments
	AmountChargedCents *int64
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewSession creates an active session starting now
func NewSession(userID, machineID uint64, clock coreport.Clock) (*Session, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	if machineID == 0 {
		return nil, errs.ErrMachineNotFound
	}

	now := clock.Now().UTC()
	return &Session{
		UserID:    userID,
		MachineID: machineID,
		StartTime: now,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Close ends the session, recording the billed duration and the amount
// actually charged. Fails if the session has already ended.
func (s *Session) Close(end time.Time, quarters, chargedCents int64) error {
	if !s.Active {
		return errs.ErrSessionAlreadyEnded
	}
	if end.Before(s.StartTime) {
		return errs.ErrInvalidInput
	}

	end = end.UTC()
	s.EndTime = &end
	s.BilledQuarters = &quarters
	s.AmountChargedCents = &chargedCents
	s.Active = false
	s.UpdatedAt = end
	return nil
}

// DurationHours returns the billed duration as an hours string ("0.75"),
// or "" while the session is active.
func (s *Session) DurationHours() string {
	if s.BilledQuarters == nil {
		return ""
	}
	return FormatQuarters(*s.BilledQuarters)
}

// AmountCharged returns the charged amount as a decimal string, or ""
// while the session is active.
func (s *Session) AmountCharged() string {
	if s.AmountChargedCents == nil {
		return ""
	}
	return FormatCents(*s.AmountChargedCents)
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	if s.BilledQuarters != nil {
		q := *s.BilledQuarters
		c.BilledQuarters = &q
	}
	if s.AmountChargedCents != nil {
		a := *s.AmountChargedCents
		c.AmountChargedCents = &a
	}
	return &c
}
