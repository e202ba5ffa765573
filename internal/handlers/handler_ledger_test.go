package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func vaksinEntry() *domain.LedgerEntry {
	return &domain.LedgerEntry{
		EntryID:            "entry-1",
		MedicineName:       "Vaksin ND",
		ReconciliationDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		InGood:             12,
		InTotal:            12,
		EndingGood:         12,
		EndingTotal:        12,
		OwnerUnitID:        "unit-a",
		OwnerRole:          domain.OwnerRoleUnit,
		CreatedAt:          time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerTestSuite) TestCreateLedgerEntry_Success() {
	body := map[string]any{
		"medicineName":       "Vaksin ND",
		"reconciliationDate": "2024-03-01",
		"inGood":             "12",
	}
	s.ledgerSvc.On("SubmitEntry", mock.Anything,
		mock.MatchedBy(func(req dto.SubmitLedgerEntryRequest) bool {
			return req.MedicineName == "Vaksin ND" && req.InGood.Int() == 12 &&
				req.ReconciliationDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		}),
		actorWithID("unit-a"), "").Return(vaksinEntry(), nil).Once()

	w := s.request(http.MethodPost, "/api/v1/ledger-entries", body, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusCreated, w.Code)
	resp := s.decode(w)
	s.True(resp.Success)
	data := resp.Data.(map[string]any)
	s.Equal("entry-1", data["id"])
	s.EqualValues(12, data["endingTotal"])
}

func (s *HandlerTestSuite) TestCreateLedgerEntry_BindingErrorsAreReportedPerField() {
	body := map[string]any{
		"medicineName":       "   ",
		"reconciliationDate": "2024-03-01",
		"outGood":            -1,
	}

	w := s.request(http.MethodPost, "/api/v1/ledger-entries", body, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusBadRequest, w.Code)
	resp := s.decode(w)
	s.False(resp.Success)
	s.Equal("must not be blank", resp.Fields["medicineName"])
	s.Equal("must be at least 0", resp.Fields["outGood"])
	s.ledgerSvc.AssertNotCalled(s.T(), "SubmitEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCreateLedgerEntry_ServiceValidationError() {
	verr := apperrors.NewValidationError("outGood", "exceeds available good stock")
	s.ledgerSvc.On("SubmitEntry", mock.Anything, mock.Anything, actorWithID("unit-a"), "").Return(nil, verr).Once()

	w := s.request(http.MethodPost, "/api/v1/ledger-entries", map[string]any{
		"medicineName": "Vaksin ND", "reconciliationDate": "2024-03-01", "outGood": 5,
	}, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("exceeds available good stock", s.decode(w).Fields["outGood"])
}

func (s *HandlerTestSuite) TestUpdateLedgerEntry_LotBusy() {
	s.ledgerSvc.On("SubmitEntry", mock.Anything, mock.Anything, actorWithID("unit-a"), "entry-1").
		Return(nil, fmt.Errorf("lock lot: %w", apperrors.ErrConflict)).Once()

	w := s.request(http.MethodPut, "/api/v1/ledger-entries/entry-1", map[string]any{
		"medicineName": "Vaksin ND", "reconciliationDate": "2024-03-01",
	}, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestGetLedgerEntry_OtherPartitionIsNotFound() {
	s.ledgerSvc.On("GetEntry", mock.Anything, "entry-9", actorWithID("unit-b")).Return(nil, apperrors.ErrNotFound).Once()

	w := s.request(http.MethodGet, "/api/v1/ledger-entries/entry-9", nil, s.tokenFor("unit-b", domain.UserRoleUser))

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestListLedgerEntries_PassesQuery() {
	token := "abc"
	s.ledgerSvc.On("ListEntries", mock.Anything,
		dto.ListLedgerEntriesParams{Limit: 5, NextToken: &token, MedicineName: "vaksin"},
		actorWithID("unit-a")).
		Return(&dto.ListLedgerEntriesResponse{Entries: []dto.LedgerEntryResponse{}}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/ledger-entries?limit=5&nextToken=abc&medicineName=vaksin", nil,
		s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestListLedgerEntries_StoreUnavailable() {
	s.ledgerSvc.On("ListEntries", mock.Anything, mock.Anything, actorWithID("unit-a")).
		Return(nil, apperrors.NewAppError(500, "query failed", errors.New("connection refused"))).Once()

	w := s.request(http.MethodGet, "/api/v1/ledger-entries", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.NotContains(w.Body.String(), "connection refused")
}

func (s *HandlerTestSuite) TestCarryForward() {
	expiry := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	s.ledgerSvc.On("ResolveCarryForward", mock.Anything, "Vaksin ND", &expiry, actorWithID("unit-a"), "").
		Return(domain.CarryForward{EndingGood: 12}, nil).Once()

	w := s.request(http.MethodGet, "/api/v1/ledger-entries/carry-forward?medicineName=Vaksin%20ND&expiryDate=2025-06-30", nil,
		s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w).Data.(map[string]any)
	s.EqualValues(12, data["endingGood"])
	s.EqualValues(0, data["endingDamaged"])
}

func (s *HandlerTestSuite) TestCarryForward_BadExpiry() {
	w := s.request(http.MethodGet, "/api/v1/ledger-entries/carry-forward?medicineName=X&expiryDate=30/06/2025", nil,
		s.tokenFor("unit-a", domain.UserRoleUser))
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestDeleteLedgerEntry() {
	s.ledgerSvc.On("DeleteEntry", mock.Anything, "entry-1", actorWithID("unit-a")).Return(nil).Once()

	w := s.request(http.MethodDelete, "/api/v1/ledger-entries/entry-1", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusOK, w.Code)
}
