package opname

import (
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// ResolveCarryForward picks the latest entry of a lot out of history and
// returns its ending balance. history must already be limited to one medicine
// name and one partition. An empty result is {0, 0}, not an error.
func ResolveCarryForward(history []domain.LedgerEntry, expiryDate *time.Time, excludeEntryID string) (domain.CarryForward, *domain.LedgerEntry) {
	var best *domain.LedgerEntry
	for i := range history {
		e := history[i]
		if !domain.SameExpiry(e.ExpiryDate, expiryDate) {
			continue
		}
		if excludeEntryID != "" && e.EntryID == excludeEntryID {
			continue
		}
		if best == nil || e.IsNewerThan(*best) {
			best = &history[i]
		}
	}
	if best == nil {
		return domain.CarryForward{}, nil
	}
	return best.CarryForward(), best
}
