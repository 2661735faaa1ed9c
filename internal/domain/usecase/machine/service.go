// Package machine implements the machine registry: fleet CRUD and the
// operator side of the status state machine.
package machine

import (
	"context"
	"fmt"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence"
)

// Service implements machine registry operations
type Service struct {
	uow    persistence.UnitOfWork
	clock  coreport.Clock
	logger coreport.Logger
}

// NewService creates a new machine registry service
func NewService(uow persistence.UnitOfWork, clock coreport.Clock, logger coreport.Logger) *Service {
	return &Service{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

// Create registers a new machine in the Available state
func (s *Service) Create(ctx context.Context, name, tier, hourlyRate string) (*entity.Machine, error) {
	rateCents, err := entity.ParseAmount(hourlyRate)
	if err != nil {
		return nil, err
	}
	if rateCents == 0 {
		return nil, errs.ErrInvalidRate
	}

	machine, err := entity.NewMachine(name, entity.MachineTier(tier), rateCents, s.clock)
	if err != nil {
		return nil, err
	}

	if err := s.uow.Machines(ctx).Create(ctx, machine); err != nil {
		return nil, err
	}

	s.logger.Info("Machine created", map[string]any{
		"machine_id":  machine.ID,
		"name":        machine.Name,
		"tier":        string(machine.Tier),
		"hourly_rate": machine.HourlyRate(),
	})
	return machine, nil
}

// UpdateRequest carries optional machine field changes
type UpdateRequest struct {
	Name       *string
	Tier       *string
	HourlyRate *string
	Status     *string
}

// Update applies field changes and operator status transitions to a
// machine inside one unit of work. Status changes go through the
// Available<->Maintenance rules; InUse is never set here.
func (s *Service) Update(ctx context.Context, id uint64, req UpdateRequest) (*entity.Machine, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	machine, err := s.updateInTx(txCtx, id, req)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after machine update error", map[string]any{
				"machine_id": id,
				"error":      rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit machine update: %w", err)
	}
	return machine, nil
}

func (s *Service) updateInTx(txCtx context.Context, id uint64, req UpdateRequest) (*entity.Machine, error) {
	machines := s.uow.Machines(txCtx)

	machine, err := machines.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errs.ErrInvalidInput
		}
		machine.Name = *req.Name
	}
	if req.Tier != nil {
		if !entity.IsValidTier(*req.Tier) {
			return nil, errs.ErrInvalidInput
		}
		machine.Tier = entity.MachineTier(*req.Tier)
	}
	if req.HourlyRate != nil {
		rateCents, err := entity.ParseAmount(*req.HourlyRate)
		if err != nil {
			return nil, err
		}
		if rateCents == 0 {
			return nil, errs.ErrInvalidRate
		}
		machine.HourlyRateCents = rateCents
	}
	if req.Status != nil {
		if err := machine.SetOperatorStatus(entity.MachineStatus(*req.Status), s.clock); err != nil {
			return nil, err
		}
	} else {
		machine.UpdatedAt = s.clock.Now()
	}

	if err := machines.Update(txCtx, machine); err != nil {
		return nil, err
	}
	return machine, nil
}

// SetStatus applies an operator status transition (Available<->Maintenance)
func (s *Service) SetStatus(ctx context.Context, id uint64, status string) (*entity.Machine, error) {
	return s.Update(ctx, id, UpdateRequest{Status: &status})
}

// Delete removes a machine. Rejected while the machine is InUse or any
// active session still references it.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}

	if err := s.deleteInTx(txCtx, id); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after machine delete error", map[string]any{
				"machine_id": id,
				"error":      rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit machine delete: %w", err)
	}

	s.logger.Info("Machine deleted", map[string]any{"machine_id": id})
	return nil
}

func (s *Service) deleteInTx(txCtx context.Context, id uint64) error {
	machines := s.uow.Machines(txCtx)
	sessions := s.uow.Sessions(txCtx)

	machine, err := machines.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return err
	}
	if machine.Status == entity.StatusInUse {
		return errs.ErrMachineInUse
	}

	active, err := sessions.CountActiveByMachine(txCtx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return errs.ErrMachineInUse
	}

	return machines.Delete(txCtx, id)
}

// Get retrieves a machine by ID
func (s *Service) Get(ctx context.Context, id uint64) (*entity.Machine, error) {
	return s.uow.Machines(ctx).GetByID(ctx, id)
}

// List returns all machines
func (s *Service) List(ctx context.Context) ([]*entity.Machine, error) {
	return s.uow.Machines(ctx).List(ctx)
}
