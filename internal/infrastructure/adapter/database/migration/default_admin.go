package migration

import (
	"context"
	"errors"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	userUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/user"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/auth"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/avatar"
)

// AdminSeed holds the credentials of the bootstrap operator account
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// CreateDefaultAdmin creates the bootstrap operator account if it does not
// exist. An empty seed disables seeding.
func CreateDefaultAdmin(ctx context.Context, userService *userUseCase.Service, seed AdminSeed) error {
	if seed.Username == "" || seed.Password == "" {
		return nil
	}

	_, err := userService.GetByUsername(ctx, seed.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	_, err = userService.Create(ctx, userUseCase.CreateRequest{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: hash,
		Gender:       entity.GenderMale,
		AvatarURL:    avatar.URL(seed.Username, entity.GenderMale),
		IsAdmin:      true,
	})
	return err
}
