package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int, actor *domain.ActingUser) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor *domain.ActingUser) (*domain.User, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor *domain.ActingUser) (*domain.User, error) {
	args := m.Called(ctx, userID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime).Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, actor *domain.ActingUser) error {
	return m.Called(ctx, userID, actor).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string, actor *domain.ActingUser) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams, actor *domain.ActingUser) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}
func (m *MockLedgerService) ResolveCarryForward(ctx context.Context, medicineName string, expiryDate *time.Time, actor *domain.ActingUser, excludeEntryID string) (domain.CarryForward, error) {
	args := m.Called(ctx, medicineName, expiryDate, actor, excludeEntryID)
	return args.Get(0).(domain.CarryForward), args.Error(1)
}
func (m *MockLedgerService) SubmitEntry(ctx context.Context, req dto.SubmitLedgerEntryRequest, actor *domain.ActingUser, existingEntryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, actor, existingEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) DeleteEntry(ctx context.Context, entryID string, actor *domain.ActingUser) error {
	return m.Called(ctx, entryID, actor).Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock StatsService ---
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) ComputeDashboardStats(ctx context.Context, actor *domain.ActingUser) (*domain.DashboardStats, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockStatsService) ComputeMonitoringStats(ctx context.Context, unitID string, actor *domain.ActingUser) (*domain.DashboardStats, error) {
	args := m.Called(ctx, unitID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockStatsService) WatchStats(ctx context.Context, view domain.LedgerView, unitID string, actor *domain.ActingUser) (<-chan *domain.DashboardStats, error) {
	args := m.Called(ctx, view, unitID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *domain.DashboardStats), args.Error(1)
}

var _ portssvc.StatsSvc = (*MockStatsService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ExtractReport(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]domain.ReportRow, error) {
	args := m.Called(ctx, cutoffDate, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportRow), args.Error(1)
}
func (m *MockReportingService) StockReport(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) (*domain.StockReport, error) {
	args := m.Called(ctx, cutoffDate, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockReport), args.Error(1)
}
func (m *MockReportingService) ExportXLSX(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]byte, error) {
	args := m.Called(ctx, cutoffDate, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockReportingService) RenderPDF(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]byte, error) {
	args := m.Called(ctx, cutoffDate, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetOfficialsSettings(ctx context.Context, actor *domain.ActingUser) (*domain.OfficialsSettings, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OfficialsSettings), args.Error(1)
}
func (m *MockSettingsService) UpdateOfficialsSettings(ctx context.Context, req dto.UpdateOfficialsRequest, actor *domain.ActingUser) (*domain.OfficialsSettings, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OfficialsSettings), args.Error(1)
}

var _ portssvc.SettingsSvc = (*MockSettingsService)(nil)
