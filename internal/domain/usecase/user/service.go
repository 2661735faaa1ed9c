// Package user implements account management. Credentials arrive already
// hashed and identities already verified: the auth collaborator lives in
// the transport layer, this service only stores the opaque hash.
package user

import (
	"context"
	"fmt"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence"
)

// Service implements user account operations
type Service struct {
	uow    persistence.UnitOfWork
	clock  coreport.Clock
	logger coreport.Logger
}

// NewService creates a new user service
func NewService(uow persistence.UnitOfWork, clock coreport.Clock, logger coreport.Logger) *Service {
	return &Service{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

// CreateRequest carries the fields for a new account
type CreateRequest struct {
	Username     string
	Email        string
	PasswordHash string
	Gender       string
	AvatarURL    string
	IsAdmin      bool
	// InitialBalance, when non-empty and non-zero, is recorded as a
	// deposit transaction so balance == sum(transactions) holds from the
	// first row.
	InitialBalance string
}

// Create registers a new account, optionally funding it with an opening
// deposit, in one unit of work.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*entity.User, error) {
	user, err := entity.NewUser(req.Username, req.Email, req.PasswordHash, req.Gender, req.IsAdmin, s.clock)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = req.AvatarURL

	var initialCents int64
	if req.InitialBalance != "" {
		initialCents, err = entity.ParseAmount(req.InitialBalance)
		if err != nil {
			return nil, err
		}
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	if err := s.createInTx(txCtx, user, initialCents); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after user create error", map[string]any{
				"username": req.Username,
				"error":    rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit user create: %w", err)
	}

	s.logger.Info("User created", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"balance":  user.Balance(),
	})
	return user, nil
}

func (s *Service) createInTx(txCtx context.Context, user *entity.User, initialCents int64) error {
	users := s.uow.Users(txCtx)

	if err := users.Create(txCtx, user); err != nil {
		return err
	}

	if initialCents > 0 {
		if err := user.Deposit(initialCents, s.clock); err != nil {
			return err
		}
		description := fmt.Sprintf("Opening balance of %s", entity.FormatCents(initialCents))
		txn, err := entity.NewDeposit(user.ID, initialCents, description, s.clock)
		if err != nil {
			return err
		}
		if err := users.Update(txCtx, user); err != nil {
			return err
		}
		if err := s.uow.Transactions(txCtx).Create(txCtx, txn); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	return s.uow.Users(ctx).GetByID(ctx, id)
}

// GetByUsername retrieves a user by username. The login handler compares
// the stored hash against the presented password.
func (s *Service) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.uow.Users(ctx).GetByUsername(ctx, username)
}

// List returns all users
func (s *Service) List(ctx context.Context) ([]*entity.User, error) {
	return s.uow.Users(ctx).List(ctx)
}

// Delete removes a user. Rejected while any session or transaction still
// references the account, preserving referential integrity of the audit
// trail.
func (s *Service) Delete(ctx context.Context, id uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}

	if err := s.deleteInTx(txCtx, id); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after user delete error", map[string]any{
				"user_id": id,
				"error":   rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit user delete: %w", err)
	}

	s.logger.Info("User deleted", map[string]any{"user_id": id})
	return nil
}

func (s *Service) deleteInTx(txCtx context.Context, id uint64) error {
	users := s.uow.Users(txCtx)

	if _, err := users.GetByIDForUpdate(txCtx, id); err != nil {
		return err
	}

	sessionCount, err := s.uow.Sessions(txCtx).CountByUser(txCtx, id)
	if err != nil {
		return err
	}
	txnCount, err := s.uow.Transactions(txCtx).CountByUser(txCtx, id)
	if err != nil {
		return err
	}
	if sessionCount > 0 || txnCount > 0 {
		return errs.ErrUserHasHistory
	}

	return users.Delete(txCtx, id)
}
