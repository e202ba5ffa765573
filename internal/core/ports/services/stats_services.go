package services

import (
	"context"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// StatsSvc computes latest-snapshot figures for dashboards.
type StatsSvc interface {
	// ComputeDashboardStats aggregates the actor's own ledger.
	ComputeDashboardStats(ctx context.Context, actor *domain.ActingUser) (*domain.DashboardStats, error)

	// ComputeMonitoringStats aggregates every unit ledger, optionally only unitID. Admin only.
	ComputeMonitoringStats(ctx context.Context, unitID string, actor *domain.ActingUser) (*domain.DashboardStats, error)

	// WatchStats emits the current figures and then fresh figures after every
	// visible ledger change until ctx is done.
	WatchStats(ctx context.Context, view domain.LedgerView, unitID string, actor *domain.ActingUser) (<-chan *domain.DashboardStats, error)
}
