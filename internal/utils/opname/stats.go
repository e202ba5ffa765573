package opname

import (
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// DisplayDateLayout is used for dates shown on dashboards.
const DisplayDateLayout = "02 Jan 2006"

// ExpiryHorizon returns the instant before which a lot counts as expiring.
func ExpiryHorizon(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// IsLowStock reports whether a snapshot entry is under the low stock threshold.
func IsLowStock(e domain.LedgerEntry) bool {
	return e.EndingTotal < domain.LowStockThreshold
}

// IsExpiring reports whether a snapshot entry expires within a month of now.
func IsExpiring(e domain.LedgerEntry, now time.Time) bool {
	return e.ExpiryDate != nil && e.ExpiryDate.Before(ExpiryHorizon(now))
}

// BuildDashboardStats computes dashboard figures from every entry visible to an actor.
func BuildDashboardStats(entries []domain.LedgerEntry, now time.Time) domain.DashboardStats {
	snapshot := FinalSnapshot(entries)
	return statsFromSnapshot(snapshot, now)
}

// BuildMonitoringStats computes the same figures as BuildDashboardStats over
// every visible unit, grouped by medicine name only. Snapshot carries the per
// unit rows instead of the grouped ones.
func BuildMonitoringStats(entries []domain.LedgerEntry, now time.Time) domain.DashboardStats {
	stats := statsFromSnapshot(FinalSnapshot(entries), now)
	stats.Snapshot = MonitoringSnapshot(entries)
	return stats
}

func statsFromSnapshot(snapshot []domain.LedgerEntry, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		LowStockList: []domain.StockAlert{},
		ExpiringList: []domain.StockAlert{},
		Snapshot:     snapshot,
		GeneratedAt:  now,
	}

	for _, e := range snapshot {
		stats.TotalMedicineCount++
		stats.TotalUnits += e.EndingTotal

		if IsLowStock(e) {
			stats.LowStockCount++
			stats.LowStockList = append(stats.LowStockList, alertRow(e))
		}
		if IsExpiring(e, now) {
			stats.ExpiringCount++
			row := alertRow(e)
			row.ExpiryDate = e.ExpiryDate
			row.ExpiryLabel = FormatDate(*e.ExpiryDate, DisplayDateLayout)
			stats.ExpiringList = append(stats.ExpiringList, row)
		}
	}
	return stats
}

func alertRow(e domain.LedgerEntry) domain.StockAlert {
	return domain.StockAlert{
		EntryID:         e.EntryID,
		MedicineName:    e.MedicineName,
		RemainingStock:  e.EndingTotal,
		UnitDisplayName: e.OwnerUnitDisplayName,
	}
}
