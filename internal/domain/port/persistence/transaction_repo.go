package persistence

import (
	"context"
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// TransactionRepository defines the persistence operations for the ledger.
// Rows are append-only: there is deliberately no update or delete.
type TransactionRepository interface {
	// Create appends a new ledger row and assigns its ID
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns a user's transactions ordered by creation time descending
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error)

	// List returns all transactions ordered by creation time descending
	List(ctx context.Context) ([]*entity.Transaction, error)

	// SumByUser returns the sum of the signed amounts of a user's
	// transactions, in cents. Used to verify balance == sum(amounts).
	SumByUser(ctx context.Context, userID uint64) (int64, error)

	// SumChargesSince returns the sum of the absolute values of
	// session_charge amounts created at or after the given instant
	SumChargesSince(ctx context.Context, since time.Time) (int64, error)

	// CountByUser returns the number of transactions referencing a user
	CountByUser(ctx context.Context, userID uint64) (int64, error)
}
