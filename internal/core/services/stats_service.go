package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/utils/opname"
	"golang.org/x/sync/singleflight"
)

// statsService implements the StatsSvc interface
type statsService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	notifier   portssvc.ChangeNotifier
	group      singleflight.Group
	now        func() time.Time
}

// StatsServiceOption is a functional option for configuring the stats service
type StatsServiceOption func(*statsService)

// WithStatsNotifier enables WatchStats.
func WithStatsNotifier(notifier portssvc.ChangeNotifier) StatsServiceOption {
	return func(s *statsService) {
		s.notifier = notifier
	}
}

// WithStatsClock overrides the clock used for the expiry horizon.
func WithStatsClock(now func() time.Time) StatsServiceOption {
	return func(s *statsService) {
		s.now = now
	}
}

// NewStatsService creates a new stats service with the provided options
func NewStatsService(repo portsrepo.LedgerReader, options ...StatsServiceOption) portssvc.StatsSvc {
	svc := &statsService{
		ledgerRepo: repo,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatsSvc = (*statsService)(nil)

// ComputeDashboardStats recomputes the latest snapshot of the actor's ledger.
func (s *statsService) ComputeDashboardStats(ctx context.Context, actor *domain.ActingUser) (*domain.DashboardStats, error) {
	scope, err := domain.ScopeFor(actor, domain.ViewOwn)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, scope)
}

// ComputeMonitoringStats recomputes the latest snapshot of every unit, or of unitID only.
func (s *statsService) ComputeMonitoringStats(ctx context.Context, unitID string, actor *domain.ActingUser) (*domain.DashboardStats, error) {
	scope, err := domain.ScopeFor(actor, domain.ViewMonitoring)
	if err != nil {
		return nil, err
	}
	return s.compute(ctx, scope.NarrowToUnit(unitID))
}

// WatchStats streams fresh stats after each visible change.
func (s *statsService) WatchStats(ctx context.Context, view domain.LedgerView, unitID string, actor *domain.ActingUser) (<-chan *domain.DashboardStats, error) {
	scope, err := domain.ScopeFor(actor, view)
	if err != nil {
		return nil, err
	}
	scope = scope.NarrowToUnit(unitID)

	// Subscribe before the first computation so no change slips in between.
	var changes <-chan struct{}
	if s.notifier != nil {
		changes = s.notifier.Subscribe(ctx, scope.CoversPartition)
	}

	first, err := s.compute(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make(chan *domain.DashboardStats, 1)
	out <- first
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				// A load already in flight may predate the change.
				s.group.Forget(scope.Key())
				stats, err := s.compute(ctx, scope)
				if err != nil {
					if ctx.Err() == nil {
						s.LogError(ctx, err, "Failed to refresh watched stats", slog.String("scope", scope.Key()))
					}
					continue
				}
				select {
				case out <- stats:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// compute coalesces concurrent identical computations per scope.
func (s *statsService) compute(ctx context.Context, scope domain.LedgerScope) (*domain.DashboardStats, error) {
	// The shared call outlives any single caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	resultChan := s.group.DoChan(scope.Key(), func() (interface{}, error) {
		entries, err := s.ledgerRepo.FindEntries(loadCtx, scope)
		if err != nil {
			return nil, err
		}
		var stats domain.DashboardStats
		if scope.OwnerRole == domain.OwnerRoleUnit && scope.OwnerUnitID == "" {
			stats = opname.BuildMonitoringStats(entries, s.now())
		} else {
			stats = opname.BuildDashboardStats(entries, s.now())
		}
		return &stats, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			s.LogError(ctx, res.Err, "Failed to compute stats", slog.String("scope", scope.Key()))
			return nil, fmt.Errorf("failed to compute stats: %w", res.Err)
		}
		return res.Val.(*domain.DashboardStats), nil
	}
}
