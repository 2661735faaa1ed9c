package dto

import (
	"time"

	"github.com/krishkpatil/gaming-cafe/internal/domain/usecase/report"
)

// MachineStatsResponse breaks the fleet down by status
type MachineStatsResponse struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	InUse       int64 `json:"inUse"`
	Maintenance int64 `json:"maintenance"`
}

// DashboardStatsResponse represents the API response for the dashboard
type DashboardStatsResponse struct {
	TotalUsers     int64                `json:"totalUsers"`
	Machines       MachineStatsResponse `json:"machines"`
	ActiveSessions int64                `json:"activeSessions"`
	Revenue        string               `json:"revenue"`
	RecentSessions []SessionResponse    `json:"recentSessions"`
	GeneratedAt    time.Time            `json:"generatedAt"`
}

// ToDashboardStatsResponse converts a stats snapshot to its API
// representation
func ToDashboardStatsResponse(snap *report.StatsSnapshot) DashboardStatsResponse {
	return DashboardStatsResponse{
		TotalUsers: snap.TotalUsers,
		Machines: MachineStatsResponse{
			Total:       snap.Machines.Total,
			Available:   snap.Machines.Available,
			InUse:       snap.Machines.InUse,
			Maintenance: snap.Machines.Maintenance,
		},
		ActiveSessions: snap.ActiveSessions,
		Revenue:        snap.Revenue(),
		RecentSessions: ToSessionListResponse(snap.RecentSessions).Sessions,
		GeneratedAt:    snap.GeneratedAt,
	}
}
