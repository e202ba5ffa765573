package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, identity domain.AuthIdentity) error {
	args := m.Called(ctx, user, identity)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteAuthIdentity(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindIdentityByEmail(ctx context.Context, email string) (*domain.AuthIdentity, error) {
	args := m.Called(ctx, email)
	var identity *domain.AuthIdentity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.AuthIdentity)
	}
	return identity, args.Error(1)
}

func (m *MockUserRepository) FindIdentityByUserID(ctx context.Context, userID string) (*domain.AuthIdentity, error) {
	args := m.Called(ctx, userID)
	var identity *domain.AuthIdentity
	if args.Get(0) != nil {
		identity = args.Get(0).(*domain.AuthIdentity)
	}
	return identity, args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindOfficials(ctx context.Context, partitionKey string) (*domain.OfficialsSettings, error) {
	args := m.Called(ctx, partitionKey)
	var settings *domain.OfficialsSettings
	if args.Get(0) != nil {
		settings = args.Get(0).(*domain.OfficialsSettings)
	}
	return settings, args.Error(1)
}

func (m *MockSettingsRepository) UpsertOfficials(ctx context.Context, settings domain.OfficialsSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, entryID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByMedicine(ctx context.Context, scope domain.LedgerScope, medicineName string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, scope, medicineName)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) FindEntries(ctx context.Context, scope domain.LedgerScope) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, scope)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	return entries, args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, scope domain.LedgerScope, filter portsrepo.LedgerListFilter) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, scope, filter)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, scope domain.LedgerScope, entry domain.LedgerEntry) error {
	args := m.Called(ctx, scope, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, scope domain.LedgerScope, entryID string) error {
	args := m.Called(ctx, scope, entryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteUnitData(ctx context.Context, unitID string) (int64, error) {
	args := m.Called(ctx, unitID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock KeyLocker ---
type MockLocker struct {
	mock.Mock
	released int
}

func (m *MockLocker) Lock(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

// --- Recording notifier ---
type recordingNotifier struct {
	mu        sync.Mutex
	published []string
	subs      []recordingSub
}

type recordingSub struct {
	ch     chan struct{}
	covers func(string) bool
}

func (n *recordingNotifier) Publish(_ context.Context, partitionKey string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, partitionKey)
	for _, sub := range n.subs {
		if sub.covers != nil && !sub.covers(partitionKey) {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (n *recordingNotifier) Subscribe(_ context.Context, covers func(string) bool) <-chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs = append(n.subs, recordingSub{ch: ch, covers: covers})
	n.mu.Unlock()
	return ch
}

func (n *recordingNotifier) keys() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.published...)
}

// memLedger is an in-memory ledger store honouring scopes like the SQL predicate does.
type memLedger struct {
	mu      sync.Mutex
	entries map[string]domain.LedgerEntry
}

func newMemLedger() *memLedger {
	return &memLedger{entries: make(map[string]domain.LedgerEntry)}
}

var _ portsrepo.LedgerRepositoryFacade = (*memLedger)(nil)
var _ portsrepo.ReportingRepository = (*memLedger)(nil)

func (r *memLedger) FindEntryByID(_ context.Context, scope domain.LedgerScope, entryID string) (*domain.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[entryID]
	if !ok || !scope.Allows(e) {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *memLedger) FindEntriesByMedicine(_ context.Context, scope domain.LedgerScope, medicineName string) ([]domain.LedgerEntry, error) {
	return r.filter(func(e domain.LedgerEntry) bool { return scope.Allows(e) && e.MedicineName == medicineName }), nil
}

func (r *memLedger) FindEntries(_ context.Context, scope domain.LedgerScope) ([]domain.LedgerEntry, error) {
	return r.filter(scope.Allows), nil
}

func (r *memLedger) FindEntriesUpTo(_ context.Context, scope domain.LedgerScope, upTo time.Time) ([]domain.LedgerEntry, error) {
	return r.filter(func(e domain.LedgerEntry) bool { return scope.Allows(e) && !e.ReconciliationDate.After(upTo) }), nil
}

func (r *memLedger) ListEntries(_ context.Context, scope domain.LedgerScope, filter portsrepo.LedgerListFilter) ([]domain.LedgerEntry, *string, error) {
	out := r.filter(scope.Allows)
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil, nil
}

func (r *memLedger) SaveEntry(_ context.Context, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.EntryID] = entry
	return nil
}

func (r *memLedger) UpdateEntry(_ context.Context, scope domain.LedgerScope, entry domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[entry.EntryID]; !ok || !scope.Allows(e) {
		return apperrors.ErrNotFound
	}
	r.entries[entry.EntryID] = entry
	return nil
}

func (r *memLedger) DeleteEntry(_ context.Context, scope domain.LedgerScope, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[entryID]; !ok || !scope.Allows(e) {
		return apperrors.ErrNotFound
	}
	delete(r.entries, entryID)
	return nil
}

func (r *memLedger) DeleteUnitData(_ context.Context, unitID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, e := range r.entries {
		if e.OwnerUnitID == unitID {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

func (r *memLedger) filter(keep func(domain.LedgerEntry) bool) []domain.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.LedgerEntry{}
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IsNewerThan(out[j]) })
	return out
}

var (
	unitA = &domain.ActingUser{ID: "unit-a", Name: "UPTD A", Location: "Kecamatan A", Role: domain.UserRoleUser}
	unitB = &domain.ActingUser{ID: "unit-b", Name: "UPTD B", Location: "Kecamatan B", Role: domain.UserRoleUser}
	admin = &domain.ActingUser{ID: "admin-1", Name: "Dinas", Location: "Dinas Peternakan", Role: domain.UserRoleAdmin}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
