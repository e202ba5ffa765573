package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// LedgerListFilter narrows a paginated ledger listing.
type LedgerListFilter struct {
	MedicineName string
	Limit        int
	NextToken    *string
}

// LedgerReader defines read operations for ledger entries.
// Every method is confined to the given scope.
type LedgerReader interface {
	// FindEntryByID retrieves one entry inside the scope.
	FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByMedicine retrieves every entry of one exact medicine name inside the scope.
	FindEntriesByMedicine(ctx context.Context, scope domain.LedgerScope, medicineName string) ([]domain.LedgerEntry, error)

	// FindEntries retrieves every entry inside the scope.
	FindEntries(ctx context.Context, scope domain.LedgerScope) ([]domain.LedgerEntry, error)

	// ListEntries retrieves a page of entries, newest first, and the token of the next page.
	ListEntries(ctx context.Context, scope domain.LedgerScope, filter LedgerListFilter) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriter defines write operations for ledger entries.
type LedgerWriter interface {
	// SaveEntry inserts a new entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry overwrites an entry inside the scope.
	UpdateEntry(ctx context.Context, scope domain.LedgerScope, entry domain.LedgerEntry) error

	// DeleteEntry removes one entry inside the scope.
	DeleteEntry(ctx context.Context, scope domain.LedgerScope, entryID string) error
}

// LedgerLifecycleManager handles unit-wide removals.
type LedgerLifecycleManager interface {
	// DeleteUnitData removes every ledger entry owned by unitID (admin owned
	// rows included) and the officials settings of a unit in one
	// all-or-nothing transaction, returning the number of entries removed.
	DeleteUnitData(ctx context.Context, unitID string) (int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerLifecycleManager
}

// ReportingRepository defines the data access of the report extractor.
type ReportingRepository interface {
	// FindEntriesUpTo retrieves entries in the scope reconciled at or before upTo.
	FindEntriesUpTo(ctx context.Context, scope domain.LedgerScope, upTo time.Time) ([]domain.LedgerEntry, error)
}
