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

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func userToEntity(m *model.User) *entity.User {
	u := &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Gender:       m.Gender,
		AvatarURL:    m.AvatarURL,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	u.SetBalanceCents(m.BalanceCents)
	return u
}

func userToModel(u *entity.User) *model.User {
	return &model.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Gender:       u.Gender,
		AvatarURL:    u.AvatarURL,
		IsAdmin:      u.IsAdmin,
		BalanceCents: u.BalanceCents(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Create saves a new user and assigns its ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	m := userToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create user", map[string]any{
			"username": user.Username,
			"error":    err.Error(),
		})
		return mapError(err, errs.ErrUserNotFound)
	}
	user.ID = m.ID
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapError(err, errs.ErrUserNotFound)
	}
	return userToEntity(&m), nil
}

// GetByIDForUpdate retrieves a user by ID under a row-level write lock
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	var m model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		return nil, mapError(err, errs.ErrUserNotFound)
	}
	return userToEntity(&m), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, mapError(err, errs.ErrUserNotFound)
	}
	return userToEntity(&m), nil
}

// Update persists changed user fields, including the balance
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"gender":        user.Gender,
			"avatar_url":    user.AvatarURL,
			"is_admin":      user.IsAdmin,
			"balance_cents": user.BalanceCents(),
			"updated_at":    user.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update user", map[string]any{
			"user_id": user.ID,
			"error":   result.Error.Error(),
		})
		return mapError(result.Error, errs.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return mapError(result.Error, errs.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// List returns all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []model.User
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, mapError(err, errs.ErrUserNotFound)
	}
	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, userToEntity(&models[i]))
	}
	return users, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, mapError(err, errs.ErrUserNotFound)
	}
	return count, nil
}
