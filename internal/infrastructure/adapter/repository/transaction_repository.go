package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	errs "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using
// GORM. The table is append-only: there is no update or delete.
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func transactionToEntity(m *model.Transaction) *entity.Transaction {
	t := &entity.Transaction{
		ID:          m.ID,
		Reference:   m.Reference,
		UserID:      m.UserID,
		Kind:        entity.TransactionKind(m.Kind),
		AmountCents: m.AmountCents,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
	if m.SessionID != nil {
		id := *m.SessionID
		t.SessionID = &id
	}
	return t
}

func transactionToModel(t *entity.Transaction) *model.Transaction {
	m := &model.Transaction{
		ID:          t.ID,
		Reference:   t.Reference,
		UserID:      t.UserID,
		Kind:        string(t.Kind),
		AmountCents: t.AmountCents,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
	if t.SessionID != nil {
		id := *t.SessionID
		m.SessionID = &id
	}
	return m
}

// Create appends a new ledger row and assigns its ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := transactionToModel(transaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"user_id":   transaction.UserID,
			"kind":      string(transaction.Kind),
			"reference": transaction.Reference,
			"error":     err.Error(),
		})
		return mapError(err, errs.ErrTransactionNotFound)
	}
	transaction.ID = m.ID
	return nil
}

// ListByUser returns a user's transactions ordered by creation time descending
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC"))
}

// List returns all transactions ordered by creation time descending
func (r *TransactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at DESC, id DESC"))
}

func (r *TransactionRepository) find(query *gorm.DB) ([]*entity.Transaction, error) {
	var models []model.Transaction
	if err := query.Find(&models).Error; err != nil {
		return nil, mapError(err, errs.ErrTransactionNotFound)
	}
	transactions := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		transactions = append(transactions, transactionToEntity(&models[i]))
	}
	return transactions, nil
}

// SumByUser returns the sum of the signed amounts of a user's transactions
func (r *TransactionRepository) SumByUser(ctx context.Context, userID uint64) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, mapError(err, errs.ErrTransactionNotFound)
	}
	return sum, nil
}

// SumChargesSince returns the total charged amount (positive cents) of
// session_charge rows created at or after the given instant
func (r *TransactionRepository) SumChargesSince(ctx context.Context, since time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(-amount_cents), 0)").
		Where("kind = ? AND created_at >= ?", string(entity.KindSessionCharge), since).
		Scan(&sum).Error
	if err != nil {
		return 0, mapError(err, errs.ErrTransactionNotFound)
	}
	return sum, nil
}

// CountByUser returns the number of transactions referencing a user
func (r *TransactionRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, mapError(err, errs.ErrTransactionNotFound)
	}
	return count, nil
}
