package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// testResponseRecorder mirrors gin's test-only recorder: gin's Stream needs
// a ResponseWriter that implements http.CloseNotifier.
type testResponseRecorder struct {
	*httptest.ResponseRecorder
	closeChannel chan bool
}

func (r *testResponseRecorder) CloseNotify() <-chan bool {
	return r.closeChannel
}

func createTestResponseRecorder() *testResponseRecorder {
	return &testResponseRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func sampleStats() *domain.DashboardStats {
	return &domain.DashboardStats{
		TotalMedicineCount: 3,
		TotalUnits:         1,
		LowStockCount:      1,
		LowStockList: []domain.StockAlert{
			{EntryID: "entry-1", MedicineName: "Vaksin ND", RemainingStock: 4, UnitDisplayName: "UPTD Sukamaju"},
		},
		ExpiringList: []domain.StockAlert{},
		GeneratedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerTestSuite) TestDashboardStats() {
	s.statsSvc.On("ComputeDashboardStats", mock.Anything, actorWithID("unit-a")).Return(sampleStats(), nil).Once()

	w := s.request(http.MethodGet, "/api/v1/dashboard/stats", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w).Data.(map[string]any)
	s.EqualValues(3, data["totalMedicineCount"])
	s.EqualValues(1, data["lowStockCount"])
}

func (s *HandlerTestSuite) TestMonitoring_ForbiddenForUnits() {
	w := s.request(http.MethodGet, "/api/v1/monitoring/stats", nil, s.tokenFor("unit-a", domain.UserRoleUser))
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/v1/monitoring/stream", nil, s.tokenFor("unit-a", domain.UserRoleUser))
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestMonitoring_AdminNarrowedToUnit() {
	stats := sampleStats()
	stats.Snapshot = []domain.LedgerEntry{*vaksinEntry()}
	s.statsSvc.On("ComputeMonitoringStats", mock.Anything, "unit-a", actorWithID("admin-1")).Return(stats, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/monitoring/stats?unitId=unit-a", nil, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w).Data.(map[string]any)
	rows := data["rows"].([]any)
	s.Len(rows, 1)
	s.Equal("Vaksin ND", rows[0].(map[string]any)["medicineName"])
}

func (s *HandlerTestSuite) TestDashboardStream_SendsStatsEvents() {
	updates := make(chan *domain.DashboardStats, 1)
	updates <- sampleStats()
	close(updates)
	s.statsSvc.On("WatchStats", mock.Anything, domain.ViewOwn, "", actorWithID("unit-a")).
		Return((<-chan *domain.DashboardStats)(updates), nil).Once()

	// EventSource passes the token as a query parameter.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stream?access_token="+s.tokenFor("unit-a", domain.UserRoleUser), nil)
	w := createTestResponseRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/event-stream")
	s.Contains(w.Body.String(), "event:stats")
	s.Contains(w.Body.String(), `"totalMedicineCount":3`)
}

func (s *HandlerTestSuite) TestDashboardStream_WatchFailure() {
	s.statsSvc.On("WatchStats", mock.Anything, domain.ViewOwn, "", actorWithID("unit-a")).
		Return(nil, apperrors.ErrStoreUnavailable).Once()

	w := s.request(http.MethodGet, "/api/v1/dashboard/stream", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusServiceUnavailable, w.Code)
}
