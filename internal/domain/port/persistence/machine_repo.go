package persistence

import (
	"context"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// MachineRepository defines the persistence operations for machines
type MachineRepository interface {
	// Create saves a new machine and assigns its ID
	Create(ctx context.Context, machine *entity.Machine) error

	// GetByID retrieves a machine by ID
	//
	// Possible errors:
	// - ErrMachineNotFound
	GetByID(ctx context.Context, id uint64) (*entity.Machine, error)

	// GetByIDForUpdate retrieves a machine by ID holding a row-level write
	// lock until the surrounding unit of work ends. The Available check in
	// StartSession must go through this method so two concurrent starts on
	// one machine cannot both observe Available.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Machine, error)

	// Update persists changed machine fields, including the status
	Update(ctx context.Context, machine *entity.Machine) error

	// Delete removes a machine. Callers must first verify the machine is
	// not InUse and has no active session.
	Delete(ctx context.Context, id uint64) error

	// List returns all machines ordered by ID
	List(ctx context.Context) ([]*entity.Machine, error)

	// CountByStatus returns the number of machines per status
	CountByStatus(ctx context.Context) (map[entity.MachineStatus]int64, error)
}
