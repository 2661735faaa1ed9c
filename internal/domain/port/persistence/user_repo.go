package persistence

import (
	"context"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// UserRepository defines the persistence operations for user accounts
type UserRepository interface {
	// Create saves a new user and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateUser: username or email already taken
	// - ErrDatabaseConnection: the store is unreachable
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDForUpdate retrieves a user by ID holding a row-level write
	// lock until the surrounding unit of work ends. Balance checks and the
	// writes that follow them must go through this method.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username
	//
	// Possible errors:
	// - ErrUserNotFound
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Update persists changed user fields, including the balance
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user. Callers must first verify no sessions or
	// transactions reference the user.
	Delete(ctx context.Context, id uint64) error

	// List returns all users ordered by ID
	List(ctx context.Context) ([]*entity.User, error)

	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}
