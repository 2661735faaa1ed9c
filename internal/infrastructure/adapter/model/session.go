package model

import (
	"time"
)

// Session represents the database model for sessions
type Session struct {
	ID                 uint64     `gorm:"primaryKey;autoIncrement"`
	UserID             uint64     `gorm:"not null;index"`
	MachineID          uint64     `gorm:"not null;index"`
	StartTime          time.Time  `gorm:"not null;index"`
	EndTime            *time.Time
	BilledQuarters     *int64
	AmountChargedCents *int64
	Active             bool      `gorm:"not null;index"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`

	// Define relationships
	User    User    `gorm:"foreignKey:UserID;references:ID"`
	Machine Machine `gorm:"foreignKey:MachineID;references:ID"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}
