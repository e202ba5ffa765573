package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/platform/export"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) TestReport_MissingCutoff() {
	w := s.request(http.MethodGet, "/api/v1/reports/stock-opname", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("is required", s.decode(w).Fields["cutoffDate"])
}

func (s *HandlerTestSuite) TestReport_UnparseableCutoff() {
	w := s.request(http.MethodGet, "/api/v1/reports/stock-opname/xlsx?cutoffDate=31-03-2024", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.decode(w).Fields, "cutoffDate")
}

func (s *HandlerTestSuite) TestReport_ExportXLSX() {
	cutoff := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	s.reportingSvc.On("ExportXLSX", mock.Anything, cutoff, actorWithID("unit-a")).Return([]byte("PK-xlsx"), nil).Once()

	w := s.request(http.MethodGet, "/api/v1/reports/stock-opname/xlsx?cutoffDate=2024-03-31", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusOK, w.Code)
	s.Equal(export.XLSXContentType, w.Header().Get("Content-Type"))
	s.Equal(`attachment; filename="stock-opname-2024-03-31.xlsx"`, w.Header().Get("Content-Disposition"))
	s.Equal("PK-xlsx", w.Body.String())
}

func (s *HandlerTestSuite) TestReport_PDFRendererMissing() {
	s.reportingSvc.On("RenderPDF", mock.Anything, mock.Anything, actorWithID("admin-1")).
		Return(nil, apperrors.ErrStoreUnavailable).Once()

	w := s.request(http.MethodGet, "/api/v1/reports/stock-opname/pdf?cutoffDate=2024-03-31", nil, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusServiceUnavailable, w.Code)
}
