package migration

import (
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Manager manages database migrations
type Manager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewManager creates a new migration manager
func NewManager(db *gorm.DB, logger coreport.Logger) *Manager {
	return &Manager{
		db:     db,
		logger: logger,
	}
}

// MigrateAll performs all migrations
func (m *Manager) MigrateAll() error {
	m.logger.Info("Starting database migrations", nil)

	if err := m.autoMigrateModels(); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Database migrations completed", nil)
	return nil
}

// autoMigrateModels creates or updates the schema for all models
func (m *Manager) autoMigrateModels() error {
	return m.db.AutoMigrate(
		&model.User{},
		&model.Machine{},
		&model.Session{},
		&model.Transaction{},
	)
}

// createIndexes creates indexes the model tags cannot express
func (m *Manager) createIndexes() error {
	indexes := []string{
		// One active session per machine, enforced at the schema level
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_machine_active
			ON sessions (machine_id) WHERE active`,
		// Ledger scans for the recent-revenue window
		`CREATE INDEX IF NOT EXISTS idx_transactions_kind_created_at
			ON transactions (kind, created_at DESC)`,
		// Per-user ledger listing
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_created_at
			ON transactions (user_id, created_at DESC)`,
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}
