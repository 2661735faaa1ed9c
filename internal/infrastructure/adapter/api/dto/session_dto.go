package dto

import (
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// StartSessionRequest represents the API request for starting a session
type StartSessionRequest struct {
	UserID    uint64 `json:"userId" binding:"required"`
	MachineID uint64 `json:"machineId" binding:"required"`
}

// SessionResponse represents the API response for a single session.
// DurationHours and AmountCharged are empty while the session is active.
type SessionResponse struct {
	ID            uint64     `json:"id"`
	UserID        uint64     `json:"userId"`
	MachineID     uint64     `json:"machineId"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"`
	DurationHours string     `json:"durationHours,omitempty"`
	AmountCharged string     `json:"amountCharged,omitempty"`
	Active        bool       `json:"active"`
}

// SessionListResponse represents the API response for listing sessions
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Count    int               `json:"count"`
}

// EndSessionResponse represents the API response for a closed session,
// including the ledger row the close produced
type EndSessionResponse struct {
	Session     SessionResponse     `json:"session"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToSessionResponse converts a session entity to its API representation
func ToSessionResponse(s *entity.Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		MachineID:     s.MachineID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		DurationHours: s.DurationHours(),
		AmountCharged: s.AmountCharged(),
		Active:        s.Active,
	}
}

// ToSessionListResponse converts session entities to a list response
func ToSessionListResponse(sessions []*entity.Session) SessionListResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, ToSessionResponse(s))
	}
	return SessionListResponse{Sessions: out, Count: len(out)}
}
