package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/utils/opname"
	"github.com/google/uuid"
)

// minMedicineNameLength is checked after trimming.
const minMedicineNameLength = 2

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	locker     portssvc.KeyLocker
	notifier   portssvc.ChangeNotifier
	now        func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLotLocker serialises submits on the same stock lot.
func WithLotLocker(locker portssvc.KeyLocker) LedgerServiceOption {
	return func(s *ledgerService) {
		s.locker = locker
	}
}

// WithLedgerNotifier announces every successful write.
func WithLedgerNotifier(notifier portssvc.ChangeNotifier) LedgerServiceOption {
	return func(s *ledgerService) {
		s.notifier = notifier
	}
}

// WithLedgerClock overrides the server clock.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: repo,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// SubmitEntry validates, computes and writes exactly one ledger row.
func (s *ledgerService) SubmitEntry(ctx context.Context, req dto.SubmitLedgerEntryRequest, actor *domain.ActingUser, existingEntryID string) (*domain.LedgerEntry, error) {
	scope, err := domain.WritableScopeFor(actor)
	if err != nil {
		return nil, err
	}
	if verr := validateSubmitRequest(req); verr.HasErrors() {
		return nil, verr
	}

	entry := domain.LedgerEntry{
		MedicineName:       strings.TrimSpace(req.MedicineName),
		Category:           strings.TrimSpace(req.Category),
		UnitOfMeasure:      strings.TrimSpace(req.UnitOfMeasure),
		OriginOfGoods:      strings.TrimSpace(req.OriginOfGoods),
		ReconciliationDate: req.ReconciliationDate.Time,
		ExpiryDate:         req.ExpiryDate.TimePtr(),
		PriorGood:          req.PriorGood.Int(),
		PriorDamaged:       req.PriorDamaged.Int(),
		InGood:             req.InGood.Int(),
		InDamaged:          req.InDamaged.Int(),
		OutGood:            req.OutGood.Int(),
		OutDamaged:         req.OutDamaged.Int(),
		Notes:              req.Notes,
	}
	entry.StampOwner(actor)

	lots := []string{entry.LotKey()}
	if existingEntryID != "" {
		stored, err := s.findForUpdate(ctx, scope, existingEntryID)
		if err != nil {
			return nil, err
		}
		lots = append(lots, stored.LotKey())
	}

	unlock, err := s.lockLots(ctx, lots)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if existingEntryID != "" {
		// Re-read under the locks; a concurrent edit may have moved the entry.
		stored, err := s.findForUpdate(ctx, scope, existingEntryID)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(lots, stored.LotKey()) {
			return nil, fmt.Errorf("ledger entry %s moved to another lot: %w", existingEntryID, apperrors.ErrConflict)
		}
	}

	if req.CarryForward {
		history, err := s.ledgerRepo.FindEntriesByMedicine(ctx, scope, entry.MedicineName)
		if err != nil {
			s.LogError(ctx, err, "Failed to load lot history", slog.String("medicine", entry.MedicineName))
			return nil, fmt.Errorf("failed to resolve carry-forward: %w", err)
		}
		cf, _ := opname.ResolveCarryForward(history, entry.ExpiryDate, existingEntryID)
		entry.PriorGood = cf.EndingGood
		entry.PriorDamaged = cf.EndingDamaged
	}

	entry.Recompute()
	now := s.now()
	entry.CreatedAt = now

	if existingEntryID == "" {
		entry.EntryID = uuid.NewString()
		if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
			s.LogError(ctx, err, "Failed to save ledger entry", slog.String("medicine", entry.MedicineName))
			return nil, fmt.Errorf("failed to save ledger entry: %w", err)
		}
	} else {
		entry.EntryID = existingEntryID
		entry.UpdatedAt = &now
		if err := s.ledgerRepo.UpdateEntry(ctx, scope, entry); err != nil {
			s.LogError(ctx, err, "Failed to update ledger entry", slog.String("entry_id", existingEntryID))
			return nil, fmt.Errorf("failed to update ledger entry: %w", err)
		}
	}

	s.LogInfo(ctx, "Ledger entry written",
		slog.String("entry_id", entry.EntryID),
		slog.String("medicine", entry.MedicineName),
		slog.Int("ending_total", entry.EndingTotal))
	s.publish(ctx, entry.PartitionKey())
	return &entry, nil
}

func (s *ledgerService) findForUpdate(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.LedgerEntry, error) {
	stored, err := s.ledgerRepo.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load entry for update", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}
	return stored, nil
}

// lockLots takes every distinct lot key in sorted order. An edit that moves an
// entry holds both its old and its new lot.
func (s *ledgerService) lockLots(ctx context.Context, keys []string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	unlocks := make([]func(), 0, len(keys))
	release := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, key := range keys {
		unlock, err := s.locker.Lock(ctx, key)
		if err != nil {
			release()
			s.LogError(ctx, err, "Failed to lock stock lot", slog.String("lot", key))
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}

// DeleteEntry removes a single row. Later entries keep their stored prior balances.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string, actor *domain.ActingUser) error {
	scope, err := domain.WritableScopeFor(actor)
	if err != nil {
		return err
	}
	if err := s.ledgerRepo.DeleteEntry(ctx, scope, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete ledger entry", slog.String("entry_id", entryID))
		}
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	s.LogInfo(ctx, "Ledger entry deleted", slog.String("entry_id", entryID))
	s.publish(ctx, domain.PartitionKeyFor(actor))
	return nil
}

// GetEntry retrieves one entry of the actor's ledger.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string, actor *domain.ActingUser) (*domain.LedgerEntry, error) {
	scope, err := domain.WritableScopeFor(actor)
	if err != nil {
		return nil, err
	}
	entry, err := s.ledgerRepo.FindEntryByID(ctx, scope, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a page of the actor's ledger.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams, actor *domain.ActingUser) (*dto.ListLedgerEntriesResponse, error) {
	scope, err := domain.WritableScopeFor(actor)
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, next, err := s.ledgerRepo.ListEntries(ctx, scope, portsrepo.LedgerListFilter{
		MedicineName: strings.TrimSpace(params.MedicineName),
		Limit:        limit,
		NextToken:    params.NextToken,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: next,
	}, nil
}

// ResolveCarryForward returns the ending balance of the latest entry of the lot.
func (s *ledgerService) ResolveCarryForward(ctx context.Context, medicineName string, expiryDate *time.Time, actor *domain.ActingUser, excludeEntryID string) (domain.CarryForward, error) {
	scope, err := domain.WritableScopeFor(actor)
	if err != nil {
		return domain.CarryForward{}, err
	}
	name := strings.TrimSpace(medicineName)
	if name == "" {
		return domain.CarryForward{}, nil
	}
	history, err := s.ledgerRepo.FindEntriesByMedicine(ctx, scope, name)
	if err != nil {
		s.LogError(ctx, err, "Failed to load lot history", slog.String("medicine", name))
		return domain.CarryForward{}, fmt.Errorf("failed to resolve carry-forward: %w", err)
	}
	cf, source := opname.ResolveCarryForward(history, expiryDate, excludeEntryID)
	if source != nil {
		s.LogDebug(ctx, "Carry-forward resolved", slog.String("source_entry_id", source.EntryID))
	}
	return cf, nil
}

func (s *ledgerService) publish(ctx context.Context, partitionKey string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, partitionKey); err != nil {
		// The write already succeeded; streams catch up on the next change.
		s.LogError(ctx, err, "Failed to publish ledger change", slog.String("partition", partitionKey))
	}
}

func validateSubmitRequest(req dto.SubmitLedgerEntryRequest) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	if utf8.RuneCountInString(strings.TrimSpace(req.MedicineName)) < minMedicineNameLength {
		verr.Add("medicineName", fmt.Sprintf("must be at least %d characters", minMedicineNameLength))
	}
	if req.ReconciliationDate == nil || req.ReconciliationDate.IsZero() {
		verr.Add("reconciliationDate", "is required")
	}
	quantities := map[string]dto.Quantity{
		"priorGood":    req.PriorGood,
		"priorDamaged": req.PriorDamaged,
		"inGood":       req.InGood,
		"inDamaged":    req.InDamaged,
		"outGood":      req.OutGood,
		"outDamaged":   req.OutDamaged,
	}
	for field, q := range quantities {
		if q < 0 {
			verr.Add(field, "must not be negative")
		}
	}
	return verr
}
