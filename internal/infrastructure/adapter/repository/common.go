package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
)

// mapError translates a gorm/driver error into a domain error. notFound is
// the sentinel to use for gorm.ErrRecordNotFound, e.g. ErrMachineNotFound.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "lock timeout"),
		strings.Contains(msg, "could not obtain lock"):
		return errs.ErrRowLocked

	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"):
		return errs.ErrDuplicateUser

	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no connection"),
		strings.Contains(msg, "connection reset"):
		return errs.ErrDatabaseConnection

	default:
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
}
