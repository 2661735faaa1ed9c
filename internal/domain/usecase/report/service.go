// Package report is the read-only reporting layer. Every snapshot is
// computed inside one unit of work so all aggregates describe the same
// point-in-time view of the store.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/entity"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/domain/port/persistence"
)

// RevenueWindow is the trailing window for the revenue aggregate
const RevenueWindow = 24 * time.Hour

// RecentSessionCount is how many recent sessions a snapshot carries
const RecentSessionCount = 5

// MachineStats breaks the fleet down by status
type MachineStats struct {
	Total       int64
	Available   int64
	InUse       int64
	Maintenance int64
}

// StatsSnapshot is a consistent point-in-time dashboard view
type StatsSnapshot struct {
	TotalUsers     int64
	Machines       MachineStats
	ActiveSessions int64
	RevenueCents   int64 // sum of |session_charge| in the trailing window
	RecentSessions []*entity.Session
	GeneratedAt    time.Time
}

// Revenue returns the window revenue as a string with 2 decimal places
func (s *StatsSnapshot) Revenue() string {
	return entity.FormatCents(s.RevenueCents)
}

// Service produces dashboard snapshots
type Service struct {
	uow    persistence.UnitOfWork
	clock  coreport.Clock
	logger coreport.Logger
}

// NewService creates a new reporting service
func NewService(uow persistence.UnitOfWork, clock coreport.Clock, logger coreport.Logger) *Service {
	return &Service{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

// Snapshot aggregates user, machine, session and revenue figures in a
// single read transaction. It has no side effects.
func (s *Service) Snapshot(ctx context.Context) (snap *StatsSnapshot, err error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	// Read-only: rollback either way.
	defer func() {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil && err == nil {
			err = rbErr
			snap = nil
		}
	}()

	now := s.clock.Now().UTC()
	snap = &StatsSnapshot{GeneratedAt: now}

	snap.TotalUsers, err = s.uow.Users(txCtx).Count(txCtx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.uow.Machines(txCtx).CountByStatus(txCtx)
	if err != nil {
		return nil, err
	}
	snap.Machines = MachineStats{
		Available:   byStatus[entity.StatusAvailable],
		InUse:       byStatus[entity.StatusInUse],
		Maintenance: byStatus[entity.StatusMaintenance],
	}
	snap.Machines.Total = snap.Machines.Available + snap.Machines.InUse + snap.Machines.Maintenance

	sessions := s.uow.Sessions(txCtx)
	snap.ActiveSessions, err = sessions.CountActive(txCtx)
	if err != nil {
		return nil, err
	}
	snap.RecentSessions, err = sessions.Recent(txCtx, RecentSessionCount)
	if err != nil {
		return nil, err
	}

	snap.RevenueCents, err = s.uow.Transactions(txCtx).SumChargesSince(txCtx, now.Add(-RevenueWindow))
	if err != nil {
		return nil, err
	}

	return snap, nil
}
