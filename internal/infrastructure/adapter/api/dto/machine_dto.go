package dto

import (
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// CreateMachineRequest represents the API request for registering a machine
type CreateMachineRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=120"`
	Tier       string `json:"tier" binding:"required,oneof=Standard Premium VIP"`
	HourlyRate string `json:"hourlyRate" binding:"required"`
}

// UpdateMachineRequest represents the API request for changing a machine.
// Absent fields are left untouched.
type UpdateMachineRequest struct {
	Name       *string `json:"name"`
	Tier       *string `json:"tier"`
	HourlyRate *string `json:"hourlyRate"`
	Status     *string `json:"status"`
}

// SetMachineStatusRequest represents the API request for an operator
// status change
type SetMachineStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Available Maintenance"`
}

// MachineResponse represents the API response for a single machine
type MachineResponse struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Tier       string    `json:"tier"`
	HourlyRate string    `json:"hourlyRate"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MachineListResponse represents the API response for listing machines
type MachineListResponse struct {
	Machines []MachineResponse `json:"machines"`
	Count    int               `json:"count"`
}

// ToMachineResponse converts a machine entity to its API representation
func ToMachineResponse(m *entity.Machine) MachineResponse {
	return MachineResponse{
		ID:         m.ID,
		Name:       m.Name,
		Tier:       string(m.Tier),
		HourlyRate: m.HourlyRate(),
		Status:     string(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

// ToMachineListResponse converts machine entities to a list response
func ToMachineListResponse(machines []*entity.Machine) MachineListResponse {
	out := make([]MachineResponse, 0, len(machines))
	for _, m := range machines {
		out = append(out, ToMachineResponse(m))
	}
	return MachineListResponse{Machines: out, Count: len(out)}
}
