// Package session implements the session lifecycle and billing engine.
// Start and End are the only operations that mutate more than one entity,
// and each runs inside a single unit of work: session row, machine status,
// user balance and ledger row commit together or not at all.
package session

import (
	"context"
	"fmt"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence"
)

// Engine orchestrates session start and end against the four repositories
type Engine struct {
	uow    persistence.UnitOfWork
	clock  coreport.Clock
	logger coreport.Logger
}

// NewEngine creates a new session engine
func NewEngine(uow persistence.UnitOfWork, clock coreport.Clock, logger coreport.Logger) *Engine {
	return &Engine{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

// Start opens a session for the user on the machine. The machine must be
// Available and the user's balance strictly positive. The machine goes
// InUse and the session record is created in the same unit of work.
//
// Lock order is machine then user, matching End, so concurrent starts and
// ends cannot deadlock.
func (e *Engine) Start(ctx context.Context, userID, machineID uint64) (*entity.Session, error) {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	sess, err := e.startInTx(txCtx, userID, machineID)
	if err != nil {
		if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
			e.logger.Error("Rollback failed after session start error", map[string]any{
				"user_id":    userID,
				"machine_id": machineID,
				"error":      rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit session start: %w", err)
	}

	e.logger.Info("Session started", map[string]any{
		"session_id": sess.ID,
		"user_id":    userID,
		"machine_id": machineID,
		"start_time": sess.StartTime,
	})
	return sess, nil
}

func (e *Engine) startInTx(txCtx context.Context, userID, machineID uint64) (*entity.Session, error) {
	machines := e.uow.Machines(txCtx)
	users := e.uow.Users(txCtx)
	sessions := e.uow.Sessions(txCtx)

	machine, err := machines.GetByIDForUpdate(txCtx, machineID)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByIDForUpdate(txCtx, userID)
	if err != nil {
		return nil, err
	}

	if user.BalanceCents() <= 0 {
		e.logger.Warn("Session start rejected: no balance", map[string]any{
			"user_id": userID,
			"balance": user.Balance(),
		})
		return nil, errs.NewInsufficientBalanceError(userID, user.Balance())
	}

	if err := machine.Claim(e.clock); err != nil {
		e.logger.Warn("Session start rejected: machine not available", map[string]any{
			"machine_id": machineID,
			"status":     string(machine.Status),
		})
		return nil, err
	}

	sess, err := entity.NewSession(userID, machineID, e.clock)
	if err != nil {
		return nil, err
	}

	if err := sessions.Create(txCtx, sess); err != nil {
		return nil, err
	}
	if err := machines.Update(txCtx, machine); err != nil {
		return nil, err
	}

	return sess, nil
}

// End closes an active session: bills the elapsed time rounded up to the
// next quarter hour, charges the user's balance capped at what it holds,
// frees the machine and appends the session_charge ledger row. All four
// mutations share one unit of work.
func (e *Engine) End(ctx context.Context, sessionID uint64) (*entity.Session, *entity.Transaction, error) {
	txCtx, err := e.uow.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	sess, txn, err := e.endInTx(txCtx, sessionID)
	if err != nil {
		if rbErr := e.uow.Rollback(txCtx); rbErr != nil {
			e.logger.Error("Rollback failed after session end error", map[string]any{
				"session_id": sessionID,
				"error":      rbErr.Error(),
			})
		}
		return nil, nil, err
	}

	if err := e.uow.Commit(txCtx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit session end: %w", err)
	}

	e.logger.Info("Session ended", map[string]any{
		"session_id":     sess.ID,
		"user_id":        sess.UserID,
		"machine_id":     sess.MachineID,
		"duration_hours": sess.DurationHours(),
		"amount_charged": sess.AmountCharged(),
	})
	return sess, txn, nil
}

func (e *Engine) endInTx(txCtx context.Context, sessionID uint64) (*entity.Session, *entity.Transaction, error) {
	sessions := e.uow.Sessions(txCtx)
	machines := e.uow.Machines(txCtx)
	users := e.uow.Users(txCtx)
	transactions := e.uow.Transactions(txCtx)

	sess, err := sessions.GetByIDForUpdate(txCtx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !sess.Active {
		return nil, nil, errs.ErrSessionAlreadyEnded
	}

	machine, err := machines.GetByIDForUpdate(txCtx, sess.MachineID)
	if err != nil {
		return nil, nil, &errs.BillingError{SessionID: sessionID, UserID: sess.UserID, MachineID: sess.MachineID, Err: err}
	}
	user, err := users.GetByIDForUpdate(txCtx, sess.UserID)
	if err != nil {
		return nil, nil, &errs.BillingError{SessionID: sessionID, UserID: sess.UserID, MachineID: sess.MachineID, Err: err}
	}

	end := e.clock.Now().UTC()
	quarters := entity.BilledQuarters(sess.StartTime, end)
	rawCharge := entity.ChargeCents(quarters, machine.HourlyRateCents)

	// The charge is capped at the current balance: a session never drives
	// the balance negative, even when usage outran the prepaid funds.
	charged := rawCharge
	if charged > user.BalanceCents() {
		charged = user.BalanceCents()
	}

	if err := user.Withdraw(charged, e.clock); err != nil {
		return nil, nil, &errs.BillingError{SessionID: sessionID, UserID: sess.UserID, MachineID: sess.MachineID, Err: err}
	}
	machine.Release(e.clock)

	if err := sess.Close(end, quarters, charged); err != nil {
		return nil, nil, err
	}

	description := fmt.Sprintf("Session #%d on %s: %sh at %s/h", sess.ID, machine.Name, sess.DurationHours(), machine.HourlyRate())
	txn, err := entity.NewSessionCharge(sess.UserID, sess.ID, charged, description, e.clock)
	if err != nil {
		return nil, nil, err
	}

	if err := sessions.Update(txCtx, sess); err != nil {
		return nil, nil, err
	}
	if err := machines.Update(txCtx, machine); err != nil {
		return nil, nil, err
	}
	if err := users.Update(txCtx, user); err != nil {
		return nil, nil, err
	}
	if err := transactions.Create(txCtx, txn); err != nil {
		return nil, nil, err
	}

	return sess, txn, nil
}

// Get retrieves a session by ID
func (e *Engine) Get(ctx context.Context, sessionID uint64) (*entity.Session, error) {
	return e.uow.Sessions(ctx).GetByID(ctx, sessionID)
}

// List returns all sessions, most recent first
func (e *Engine) List(ctx context.Context) ([]*entity.Session, error) {
	return e.uow.Sessions(ctx).List(ctx)
}

// ListActive returns the currently running sessions, most recent first
func (e *Engine) ListActive(ctx context.Context) ([]*entity.Session, error) {
	return e.uow.Sessions(ctx).ListActive(ctx)
}
