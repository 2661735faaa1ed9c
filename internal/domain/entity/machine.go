package entity

import (
	"strings"
	"time"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
)

// MachineTier represents the pricing tier of a machine
type MachineTier string

// Machine tiers
const (
	TierStandard MachineTier = "Standard"
	TierPremium  MachineTier = "Premium"
	TierVIP      MachineTier = "VIP"
)

// MachineStatus represents the availability state of a machine
type MachineStatus string

// Machine statuses. Available<->InUse transitions belong to the session
// engine; Available<->Maintenance to an operator.
const (
	StatusAvailable   MachineStatus = "Available"
	StatusInUse       MachineStatus = "InUse"
	StatusMaintenance MachineStatus = "Maintenance"
)

// Machine represents one rentable station on the floor
type Machine struct {
	ID              uint64
	Name            string
	Tier            MachineTier
	HourlyRateCents int64
	Status          MachineStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewMachine creates a machine in the Available state
func NewMachine(name string, tier MachineTier, hourlyRateCents int64, clock coreport.Clock) (*Machine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidInput
	}
	if !IsValidTier(string(tier)) {
		return nil, errs.ErrInvalidInput
	}
	if hourlyRateCents <= 0 {
		return nil, errs.ErrInvalidRate
	}

	now := clock.Now()
	return &Machine{
		Name:            name,
		Tier:            tier,
		HourlyRateCents: hourlyRateCents,
		Status:          StatusAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// HourlyRate returns the rate as a string with 2 decimal places
func (m *Machine) HourlyRate() string {
	return FormatCents(m.HourlyRateCents)
}

// Claim transitions Available -> InUse when a session starts
func (m *Machine) Claim(clock coreport.Clock) error {
	if m.Status != StatusAvailable {
		return errs.ErrMachineUnavailable
	}
	m.Status = StatusInUse
	m.UpdatedAt = clock.Now()
	return nil
}

// Release transitions InUse -> Available when a session ends
func (m *Machine) Release(clock coreport.Clock) {
	m.Status = StatusAvailable
	m.UpdatedAt = clock.Now()
}

// SetOperatorStatus applies an administrative transition. Only
// Available<->Maintenance is allowed here: InUse is owned by the session
// engine, so flagging a busy machine or forcing InUse is rejected.
func (m *Machine) SetOperatorStatus(status MachineStatus, clock coreport.Clock) error {
	if status != StatusAvailable && status != StatusMaintenance {
		return errs.ErrInvalidInput
	}
	if m.Status == StatusInUse {
		return errs.ErrMachineInUse
	}
	m.Status = status
	m.UpdatedAt = clock.Now()
	return nil
}

// Clone returns a deep copy of the machine
func (m *Machine) Clone() *Machine {
	c := *m
	return &c
}

// IsValidTier validates a tier string
func IsValidTier(tier string) bool {
	return tier == string(TierStandard) ||
		tier == string(TierPremium) ||
		tier == string(TierVIP)
}

// IsValidStatus validates a machine status string
func IsValidStatus(status string) bool {
	return status == string(StatusAvailable) ||
		status == string(StatusInUse) ||
		status == string(StatusMaintenance)
}
