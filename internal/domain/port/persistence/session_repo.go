package persistence

import (
	"context"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// SessionRepository defines the persistence operations for sessions
type SessionRepository interface {
	// Create saves a new session and assigns its ID
	Create(ctx context.Context, session *entity.Session) error

	// GetByID retrieves a session by ID
	//
	// Possible errors:
	// - ErrSessionNotFound
	GetByID(ctx context.Context, id uint64) (*entity.Session, error)

	// GetByIDForUpdate retrieves a session by ID holding a row-level write
	// lock until the surrounding unit of work ends, so a session can only
	// be closed once.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Session, error)

	// Update persists the one-time close mutation of a session
	Update(ctx context.Context, session *entity.Session) error

	// List returns all sessions ordered by start time descending
	List(ctx context.Context) ([]*entity.Session, error)

	// ListActive returns all active sessions ordered by start time descending
	ListActive(ctx context.Context) ([]*entity.Session, error)

	// Recent returns the most recent n sessions by start time descending
	Recent(ctx context.Context, n int) ([]*entity.Session, error)

	// CountActive returns the number of active sessions
	CountActive(ctx context.Context) (int64, error)

	// CountActiveByMachine returns the number of active sessions on a machine
	CountActiveByMachine(ctx context.Context, machineID uint64) (int64, error)

	// CountByUser returns the number of sessions referencing a user
	CountByUser(ctx context.Context, userID uint64) (int64, error)
}
