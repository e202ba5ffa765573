package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/core/services"
	"github.com/SscSPs/stock_opname_app/internal/platform/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedEntry(repo *memLedger, id string, actor *domain.ActingUser, name string, recon time.Time, ending int, expiry *time.Time) {
	e := domain.LedgerEntry{
		EntryID:            id,
		MedicineName:       name,
		ReconciliationDate: recon,
		ExpiryDate:         expiry,
		InGood:             ending,
		CreatedAt:          recon,
	}
	e.StampOwner(actor)
	e.Recompute()
	_ = repo.SaveEntry(context.Background(), e)
}

func fixedNow() time.Time { return day(2024, 3, 1) }

func TestStatsService_DashboardIsPartitioned(t *testing.T) {
	repo := newMemLedger()
	soon := day(2024, 3, 15)
	seedEntry(repo, "a1", unitA, "Vaksin ND", day(2024, 2, 1), 5, &soon)
	seedEntry(repo, "a2", unitA, "Amoxicillin", day(2024, 2, 1), 40, nil)
	seedEntry(repo, "b1", unitB, "Vaksin ND", day(2024, 2, 1), 100, nil)
	seedEntry(repo, "x1", admin, "Vaksin AI", day(2024, 2, 1), 7, nil)

	svc := services.NewStatsService(repo, services.WithStatsClock(fixedNow))

	stats, err := svc.ComputeDashboardStats(context.Background(), unitA)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalMedicineCount)
	assert.Equal(t, 45, stats.TotalUnits)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.ExpiringCount)
	require.Len(t, stats.LowStockList, 1)
	assert.Equal(t, "Vaksin ND", stats.LowStockList[0].MedicineName)

	adminStats, err := svc.ComputeDashboardStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 1, adminStats.TotalMedicineCount)
	assert.Equal(t, 7, adminStats.TotalUnits)
}

func TestStatsService_Monitoring(t *testing.T) {
	repo := newMemLedger()
	seedEntry(repo, "a1", unitA, "Vaksin ND", day(2024, 2, 1), 20, nil)
	seedEntry(repo, "b1", unitB, "Vaksin ND", day(2024, 2, 10), 30, nil)
	seedEntry(repo, "x1", admin, "Vaksin ND", day(2024, 2, 1), 1000, nil)
	svc := services.NewStatsService(repo, services.WithStatsClock(fixedNow))

	all, err := svc.ComputeMonitoringStats(context.Background(), "", admin)
	require.NoError(t, err)
	assert.Equal(t, 1, all.TotalMedicineCount, "medicines are grouped by name across units")
	assert.Equal(t, 30, all.TotalUnits)
	assert.Len(t, all.Snapshot, 2)

	one, err := svc.ComputeMonitoringStats(context.Background(), "unit-b", admin)
	require.NoError(t, err)
	assert.Equal(t, 1, one.TotalMedicineCount)
	assert.Equal(t, 30, one.TotalUnits)

	_, err = svc.ComputeMonitoringStats(context.Background(), "", unitA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.ComputeDashboardStats(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestStatsService_StoreFailure(t *testing.T) {
	repo := new(MockLedgerRepository)
	repo.On("FindEntries", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(500, "query failed", assert.AnError)).Once()
	svc := services.NewStatsService(repo)

	_, err := svc.ComputeDashboardStats(context.Background(), unitA)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	repo.AssertExpectations(t)
}

func TestStatsService_WatchStatsRefreshesOnVisibleChanges(t *testing.T) {
	repo := newMemLedger()
	notifier := &recordingNotifier{}
	stats := services.NewStatsService(repo, services.WithStatsNotifier(notifier), services.WithStatsClock(fixedNow))
	ledger := services.NewLedgerService(repo, services.WithLedgerNotifier(notifier))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := stats.WatchStats(ctx, domain.ViewOwn, "", unitA)
	require.NoError(t, err)

	first := <-updates
	assert.Equal(t, 0, first.TotalMedicineCount)

	// Another unit's write is not visible and must not wake the stream.
	_, err = ledger.SubmitEntry(ctx, submitReq("Vaksin ND", day(2024, 2, 1), nil, 0, 0, 9, 0, 0, 0), unitB, "")
	require.NoError(t, err)
	_, err = ledger.SubmitEntry(ctx, submitReq("Vaksin ND", day(2024, 2, 1), nil, 0, 0, 12, 0, 0, 0), unitA, "")
	require.NoError(t, err)

	select {
	case next := <-updates:
		assert.Equal(t, 1, next.TotalMedicineCount)
		assert.Equal(t, 12, next.TotalUnits)
	case <-time.After(2 * time.Second):
		t.Fatal("no stats update after a visible change")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-updates
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStatsService_WatchStatsSurvivesBurstsFromOtherUnits(t *testing.T) {
	repo := newMemLedger()
	hub := notify.NewHub()
	stats := services.NewStatsService(repo, services.WithStatsNotifier(hub), services.WithStatsClock(fixedNow))
	ledger := services.NewLedgerService(repo, services.WithLedgerNotifier(hub))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, err := stats.WatchStats(ctx, domain.ViewOwn, "", unitA)
	require.NoError(t, err)

	// Nobody reads the stream while the writes land.
	for _, name := range []string{"Vaksin ND", "Amoxicillin"} {
		_, err = ledger.SubmitEntry(ctx, submitReq(name, day(2024, 2, 1), nil, 0, 0, 20, 0, 0, 0), unitA, "")
		require.NoError(t, err)
	}
	for i := 0; i < 40; i++ {
		_, err = ledger.SubmitEntry(ctx, submitReq(fmt.Sprintf("Obat %02d", i), day(2024, 2, 1), nil, 0, 0, 5, 0, 0, 0), unitB, "")
		require.NoError(t, err)
	}
	_, err = ledger.SubmitEntry(ctx, submitReq("Vaksin AI", day(2024, 2, 1), nil, 0, 0, 20, 0, 0, 0), unitA, "")
	require.NoError(t, err)

	var last *domain.DashboardStats
	assert.Eventually(t, func() bool {
		for {
			select {
			case next := <-updates:
				last = next
			default:
				return last != nil && last.TotalMedicineCount == 3
			}
		}
	}, 2*time.Second, 10*time.Millisecond)
	require.NotNil(t, last)
	assert.Equal(t, 60, last.TotalUnits)
}

func TestStatsService_WatchMonitoringForbiddenForUnits(t *testing.T) {
	svc := services.NewStatsService(newMemLedger(), services.WithStatsNotifier(&recordingNotifier{}))
	_, err := svc.WatchStats(context.Background(), domain.ViewMonitoring, "", unitA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
