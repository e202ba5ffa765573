package dto

import (
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// DashboardStatsResponse wraps dashboard figures.
type DashboardStatsResponse struct {
	domain.DashboardStats
}

// MonitoringResponse adds the per unit snapshot rows to the figures.
type MonitoringResponse struct {
	domain.DashboardStats
	Rows []LedgerEntryResponse `json:"rows"`
}

// MonitoringParams are the query parameters of the monitoring view.
type MonitoringParams struct {
	UnitID string `form:"unitId"`
}

// ToDashboardStatsResponse converts dashboard stats.
func ToDashboardStatsResponse(stats *domain.DashboardStats) DashboardStatsResponse {
	return DashboardStatsResponse{DashboardStats: *stats}
}

// ToMonitoringResponse converts monitoring stats including their snapshot.
func ToMonitoringResponse(stats *domain.DashboardStats) MonitoringResponse {
	return MonitoringResponse{
		DashboardStats: *stats,
		Rows:           ToLedgerEntryResponses(stats.Snapshot),
	}
}
