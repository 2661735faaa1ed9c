package model

import (
	"time"
)

// Machine represents the database model for machines
type Machine struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	Name            string    `gorm:"not null;size:120"`
	Tier            string    `gorm:"not null;size:20"`
	HourlyRateCents int64     `gorm:"not null"` // rate in cents per hour
	Status          string    `gorm:"not null;size:20;index"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for Machine
func (Machine) TableName() string {
	return "machines"
}
