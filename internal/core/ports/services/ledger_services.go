package services

import (
	"context"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/dto"
)

// LedgerReaderSvc defines read operations on the stock ledger
type LedgerReaderSvc interface {
	// GetEntry retrieves one entry of the actor's ledger.
	GetEntry(ctx context.Context, entryID string, actor *domain.ActingUser) (*domain.LedgerEntry, error)

	// ListEntries retrieves a page of the actor's ledger, newest first.
	ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams, actor *domain.ActingUser) (*dto.ListLedgerEntriesResponse, error)

	// ResolveCarryForward returns the ending balance of the latest entry of a lot, or {0,0}.
	ResolveCarryForward(ctx context.Context, medicineName string, expiryDate *time.Time, actor *domain.ActingUser, excludeEntryID string) (domain.CarryForward, error)
}

// LedgerWriterSvc defines write operations on the stock ledger
type LedgerWriterSvc interface {
	// SubmitEntry validates and computes an entry, then inserts it or, when
	// existingEntryID is set, overwrites that entry in place.
	SubmitEntry(ctx context.Context, req dto.SubmitLedgerEntryRequest, actor *domain.ActingUser, existingEntryID string) (*domain.LedgerEntry, error)

	// DeleteEntry removes a single entry.
	DeleteEntry(ctx context.Context, entryID string, actor *domain.ActingUser) error
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
