package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

// HashPassword returns the bcrypt hash of a password. The core stores the
// result as an opaque credential.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password cannot be empty", errs.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a stored bcrypt hash against a presented password
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errs.ErrInvalidCredentials
	}
	return nil
}
