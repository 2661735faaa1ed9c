// Package ledger owns the money movement primitives. Deposit is the only
// way funds enter an account; session charges are embodied in the session
// engine's end path so the balance mutation and the ledger append stay in
// one unit of work.
package ledger

import (
	"context"
	"fmt"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence"
)

// Service implements deposits and the ledger consistency check
type Service struct {
	uow    persistence.UnitOfWork
	clock  coreport.Clock
	logger coreport.Logger
}

// NewService creates a new ledger service
func NewService(uow persistence.UnitOfWork, clock coreport.Clock, logger coreport.Logger) *Service {
	return &Service{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

// Deposit adds a strictly positive amount to the user's balance and
// appends the matching deposit row in the same unit of work.
func (s *Service) Deposit(ctx context.Context, userID uint64, amount string) (*entity.Transaction, error) {
	cents, err := entity.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	if cents == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	txn, err := s.depositInTx(txCtx, userID, cents)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after deposit error", map[string]any{
				"user_id": userID,
				"error":   rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit deposit: %w", err)
	}

	s.logger.Info("Deposit recorded", map[string]any{
		"user_id":   userID,
		"amount":    txn.Amount(),
		"reference": txn.Reference,
	})
	return txn, nil
}

func (s *Service) depositInTx(txCtx context.Context, userID uint64, cents int64) (*entity.Transaction, error) {
	users := s.uow.Users(txCtx)
	transactions := s.uow.Transactions(txCtx)

	user, err := users.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Deposit(cents, s.clock); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Deposit of %s", entity.FormatCents(cents))
	txn, err := entity.NewDeposit(userID, cents, description, s.clock)
	if err != nil {
		return nil, err
	}

	if err := users.Update(txCtx, user); err != nil {
		return nil, err
	}
	if err := transactions.Create(txCtx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// VerifyBalance checks the ledger invariant balance == sum(transaction
// amounts) for one user. Returns both sides in cents so callers can log
// a drift before failing.
func (s *Service) VerifyBalance(ctx context.Context, userID uint64) (balanceCents, sumCents int64, err error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer func() {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil && err == nil {
			err = rbErr
		}
	}()

	user, err := s.uow.Users(txCtx).GetByID(txCtx, userID)
	if err != nil {
		return 0, 0, err
	}
	sum, err := s.uow.Transactions(txCtx).SumByUser(txCtx, userID)
	if err != nil {
		return 0, 0, err
	}

	if user.BalanceCents() != sum {
		s.logger.Error("Ledger drift detected", map[string]any{
			"user_id":         userID,
			"balance":         user.Balance(),
			"transaction_sum": entity.FormatCents(sum),
		})
	}
	return user.BalanceCents(), sum, nil
}

// ListByUser returns a user's transactions, newest first
func (s *Service) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	if _, err := s.uow.Users(ctx).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.uow.Transactions(ctx).ListByUser(ctx, userID)
}

// List returns all transactions, newest first
func (s *Service) List(ctx context.Context) ([]*entity.Transaction, error) {
	return s.uow.Transactions(ctx).List(ctx)
}
