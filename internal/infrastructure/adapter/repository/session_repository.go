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

// SessionRepository implements persistence.SessionRepository using GORM
type SessionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *gorm.DB, logger coreport.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

func sessionToEntity(m *model.Session) *entity.Session {
	s := &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		MachineID: m.MachineID,
		StartTime: m.StartTime,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.EndTime != nil {
		end := *m.EndTime
		s.EndTime = &end
	}
	if m.BilledQuarters != nil {
		q := *m.BilledQuarters
		s.BilledQuarters = &q
	}
	if m.AmountChargedCents != nil {
		c := *m.AmountChargedCents
		s.AmountChargedCents = &c
	}
	return s
}

func sessionToModel(s *entity.Session) *model.Session {
	m := &model.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		MachineID: s.MachineID,
		StartTime: s.StartTime,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.EndTime != nil {
		end := *s.EndTime
		m.EndTime = &end
	}
	if s.BilledQuarters != nil {
		q := *s.BilledQuarters
		m.BilledQuarters = &q
	}
	if s.AmountChargedCents != nil {
		c := *s.AmountChargedCents
		m.AmountChargedCents = &c
	}
	return m
}

// Create saves a new session and assigns its ID
func (r *SessionRepository) Create(ctx context.Context, session *entity.Session) error {
	m := sessionToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create session", map[string]any{
			"user_id":    session.UserID,
			"machine_id": session.MachineID,
			"error":      err.Error(),
		})
		return mapError(err, errs.ErrSessionNotFound)
	}
	session.ID = m.ID
	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id uint64) (*entity.Session, error) {
	var m model.Session
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError(err, errs.ErrSessionNotFound)
	}
	return sessionToEntity(&m), nil
}

// GetByIDForUpdate retrieves a session by ID under a row-level write lock
func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Session, error) {
	var m model.Session
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, mapError(err, errs.ErrSessionNotFound)
	}
	return sessionToEntity(&m), nil
}

// Update persists the one-time close mutation of a session
func (r *SessionRepository) Update(ctx context.Context, session *entity.Session) error {
	result := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{
			"end_time":             session.EndTime,
			"billed_quarters":      session.BilledQuarters,
			"amount_charged_cents": session.AmountChargedCents,
			"active":               session.Active,
			"updated_at":           session.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update session", map[string]any{
			"session_id": session.ID,
			"error":      result.Error.Error(),
		})
		return mapError(result.Error, errs.ErrSessionNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrSessionNotFound
	}
	return nil
}

// List returns all sessions ordered by start time descending
func (r *SessionRepository) List(ctx context.Context) ([]*entity.Session, error) {
	return r.find(ctx, r.db.WithContext(ctx).Order("start_time DESC, id DESC"))
}

// ListActive returns all active sessions ordered by start time descending
func (r *SessionRepository) ListActive(ctx context.Context) ([]*entity.Session, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("start_time DESC, id DESC"))
}

// Recent returns the most recent n sessions by start time descending
func (r *SessionRepository) Recent(ctx context.Context, n int) ([]*entity.Session, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Order("start_time DESC, id DESC").
		Limit(n))
}

func (r *SessionRepository) find(_ context.Context, query *gorm.DB) ([]*entity.Session, error) {
	var models []model.Session
	if err := query.Find(&models).Error; err != nil {
		return nil, mapError(err, errs.ErrSessionNotFound)
	}
	sessions := make([]*entity.Session, 0, len(models))
	for i := range models {
		sessions = append(sessions, sessionToEntity(&models[i]))
	}
	return sessions, nil
}

// CountActive returns the number of active sessions
func (r *SessionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, mapError(err, errs.ErrSessionNotFound)
	}
	return count, nil
}

// CountActiveByMachine returns the number of active sessions on a machine
func (r *SessionRepository) CountActiveByMachine(ctx context.Context, machineID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("machine_id = ? AND active = ?", machineID, true).
		Count(&count).Error
	if err != nil {
		return 0, mapError(err, errs.ErrSessionNotFound)
	}
	return count, nil
}

// CountByUser returns the number of sessions referencing a user
func (r *SessionRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, mapError(err, errs.ErrSessionNotFound)
	}
	return count, nil
}
