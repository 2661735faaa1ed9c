package model

import (
	"time"
)

// User represents the database model for users
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null;size:80"`
	Email        string    `gorm:"uniqueIndex;not null;size:120"`
	PasswordHash string    `gorm:"not null;size:256"`
	Gender       string    `gorm:"not null;size:10"`
	AvatarURL    string    `gorm:"size:2048"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	BalanceCents int64     `gorm:"not null;default:0"` // balance in cents
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
