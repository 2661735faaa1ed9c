package persistence

import (
	"context"
)

// UnitOfWork coordinates a single atomic unit of work across the four
// entity repositories. StartSession, EndSession and Deposit each run
// inside exactly one unit of work: every repository mutation between
// Begin and Commit either commits in full or is rolled back in full.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Machines returns a machine repository bound to the current transaction
	Machines(ctx context.Context) MachineRepository

	// Sessions returns a session repository bound to the current transaction
	Sessions(ctx context.Context) SessionRepository

	// Transactions returns a ledger repository bound to the current transaction
	Transactions(ctx context.Context) TransactionRepository
}
