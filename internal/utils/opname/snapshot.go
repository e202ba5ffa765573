package opname

import (
	"sort"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// SortLatestFirst orders entries newest first using the ledger total order.
func SortLatestFirst(entries []domain.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IsNewerThan(entries[j])
	})
}

// LatestPerMedicine keeps the newest entry for every exact medicine name.
// The result is sorted by medicine name, then owner display name.
func LatestPerMedicine(entries []domain.LedgerEntry) []domain.LedgerEntry {
	latest := make(map[string]domain.LedgerEntry, len(entries))
	for _, e := range entries {
		current, ok := latest[e.MedicineName]
		if !ok || e.IsNewerThan(current) {
			latest[e.MedicineName] = e
		}
	}

	out := make([]domain.LedgerEntry, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MedicineName != out[j].MedicineName {
			return out[i].MedicineName < out[j].MedicineName
		}
		return out[i].OwnerUnitDisplayName < out[j].OwnerUnitDisplayName
	})
	return out
}

// FinalSnapshot is LatestPerMedicine without medicines whose ending total is zero or less.
func FinalSnapshot(entries []domain.LedgerEntry) []domain.LedgerEntry {
	latest := LatestPerMedicine(entries)
	out := latest[:0]
	for _, e := range latest {
		if e.EndingTotal > 0 {
			out = append(out, e)
		}
	}
	return out
}

// MonitoringSnapshot applies the snapshot rules per unit, so every unit keeps
// its own latest row for a medicine. Rows are ordered by unit display name,
// then medicine name.
func MonitoringSnapshot(entries []domain.LedgerEntry) []domain.LedgerEntry {
	byUnit := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		byUnit[e.OwnerUnitID] = append(byUnit[e.OwnerUnitID], e)
	}

	out := make([]domain.LedgerEntry, 0, len(entries))
	for _, unitEntries := range byUnit {
		out = append(out, FinalSnapshot(unitEntries)...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OwnerUnitDisplayName != out[j].OwnerUnitDisplayName {
			return out[i].OwnerUnitDisplayName < out[j].OwnerUnitDisplayName
		}
		if out[i].MedicineName != out[j].MedicineName {
			return out[i].MedicineName < out[j].MedicineName
		}
		return out[i].OwnerUnitID < out[j].OwnerUnitID
	})
	return out
}
