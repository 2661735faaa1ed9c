package dto

import (
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
)

// TransactionResponse represents the API response for a single ledger row.
// Amount is signed: positive for deposits, negative for session charges.
type TransactionResponse struct {
	ID          uint64    `json:"id"`
	Reference   string    `json:"reference"`
	UserID      uint64    `json:"userId"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Description string    `json:"description,omitempty"`
	SessionID   *uint64   `json:"sessionId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionListResponse represents the API response for listing
// transactions
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// ToTransactionResponse converts a transaction entity to its API
// representation
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Reference:   t.Reference,
		UserID:      t.UserID,
		Kind:        string(t.Kind),
		Amount:      t.Amount(),
		Description: t.Description,
		SessionID:   t.SessionID,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionListResponse converts transaction entities to a list response
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, ToTransactionResponse(t))
	}
	return TransactionListResponse{Transactions: out, Count: len(out)}
}
