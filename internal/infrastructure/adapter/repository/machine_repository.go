package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/model"
)

// MachineRepository implements persistence.MachineRepository using GORM
type MachineRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewMachineRepository creates a new MachineRepository instance
func NewMachineRepository(db *gorm.DB, logger coreport.Logger) *MachineRepository {
	return &MachineRepository{
		db:     db,
		logger: logger,
	}
}

func machineToEntity(m *model.Machine) *entity.Machine {
	return &entity.Machine{
		ID:              m.ID,
		Name:            m.Name,
		Tier:            entity.MachineTier(m.Tier),
		HourlyRateCents: m.HourlyRateCents,
		Status:          entity.MachineStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func machineToModel(m *entity.Machine) *model.Machine {
	return &model.Machine{
		ID:              m.ID,
		Name:            m.Name,
		Tier:            string(m.Tier),
		HourlyRateCents: m.HourlyRateCents,
		Status:          string(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// Create saves a new machine and assigns its ID
func (r *MachineRepository) Create(ctx context.Context, machine *entity.Machine) error {
	m := machineToModel(machine)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create machine", map[string]any{
			"name":  machine.Name,
			"error": err.Error(),
		})
		return mapError(err, errs.ErrMachineNotFound)
	}
	machine.ID = m.ID
	return nil
}

// GetByID retrieves a machine by ID
func (r *MachineRepository) GetByID(ctx context.Context, id uint64) (*entity.Machine, error) {
	var m model.Machine
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError(err, errs.ErrMachineNotFound)
	}
	return machineToEntity(&m), nil
}

// GetByIDForUpdate retrieves a machine by ID under a row-level write lock
func (r *MachineRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Machine, error) {
	var m model.Machine
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, mapError(err, errs.ErrMachineNotFound)
	}
	return machineToEntity(&m), nil
}

// Update persists changed machine fields, including the status
func (r *MachineRepository) Update(ctx context.Context, machine *entity.Machine) error {
	result := r.db.WithContext(ctx).Model(&model.Machine{}).
		Where("id = ?", machine.ID).
		Updates(map[string]any{
			"name":              machine.Name,
			"tier":              string(machine.Tier),
			"hourly_rate_cents": machine.HourlyRateCents,
			"status":            string(machine.Status),
			"updated_at":        machine.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update machine", map[string]any{
			"machine_id": machine.ID,
			"error":      result.Error.Error(),
		})
		return mapError(result.Error, errs.ErrMachineNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrMachineNotFound
	}
	return nil
}

// Delete removes a machine
func (r *MachineRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Machine{}, id)
	if result.Error != nil {
		return mapError(result.Error, errs.ErrMachineNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrMachineNotFound
	}
	return nil
}

// List returns all machines ordered by ID
func (r *MachineRepository) List(ctx context.Context) ([]*entity.Machine, error) {
	var models []model.Machine
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, mapError(err, errs.ErrMachineNotFound)
	}
	machines := make([]*entity.Machine, 0, len(models))
	for i := range models {
		machines = append(machines, machineToEntity(&models[i]))
	}
	return machines, nil
}

// CountByStatus returns the number of machines per status
func (r *MachineRepository) CountByStatus(ctx context.Context) (map[entity.MachineStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Machine{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err, errs.ErrMachineNotFound)
	}
	counts := make(map[entity.MachineStatus]int64, len(rows))
	for _, row := range rows {
		counts[entity.MachineStatus(row.Status)] = row.Count
	}
	return counts, nil
}
