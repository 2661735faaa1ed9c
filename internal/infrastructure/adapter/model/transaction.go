package model

import (
	"time"
)

// Transaction represents the database model for ledger transactions.
// Rows are append-only.
type Transaction struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Reference   string    `gorm:"uniqueIndex;not null;size:64"`
	UserID      uint64    `gorm:"not null;index"`
	Kind        string    `gorm:"not null;size:30;index"`
	AmountCents int64     `gorm:"not null"` // signed amount in cents
	Description string    `gorm:"type:text"`
	SessionID   *uint64   `gorm:"index"`
	CreatedAt   time.Time `gorm:"not null;index"`

	// Define relationships
	User    User     `gorm:"foreignKey:UserID;references:ID"`
	Session *Session `gorm:"foreignKey:SessionID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
