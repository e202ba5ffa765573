package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func unitUser() *domain.User {
	return &domain.User{
		UserID:   "unit-a",
		Name:     "UPTD Sukamaju",
		Email:    "sukamaju@example.go.id",
		Role:     domain.UserRoleUser,
		Location: "Puskeswan Sukamaju",
	}
}

func (s *HandlerTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{
		Name:     "UPTD Sukamaju",
		Email:    "sukamaju@example.go.id",
		Password: "rahasia123",
		Role:     "user",
		Location: "Puskeswan Sukamaju",
	}
	s.userSvc.On("CreateUser", mock.Anything, req, actorWithID("admin-1")).Return(unitUser(), nil).Once()

	w := s.request(http.MethodPost, "/api/v1/users", req, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusCreated, w.Code)
	data := s.decode(w).Data.(map[string]any)
	s.Equal("unit-a", data["userID"])
	s.NotContains(w.Body.String(), "rahasia123")
}

func (s *HandlerTestSuite) TestCreateUser_InvalidRole() {
	w := s.request(http.MethodPost, "/api/v1/users", map[string]any{
		"name": "X", "email": "x@example.go.id", "password": "rahasia123", "role": "superuser", "location": "Y",
	}, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("must be one of: admin user", s.decode(w).Fields["role"])
}

func (s *HandlerTestSuite) TestCreateUser_DuplicateEmail() {
	s.userSvc.On("CreateUser", mock.Anything, mock.Anything, actorWithID("admin-1")).Return(nil, apperrors.ErrDuplicate).Once()

	w := s.request(http.MethodPost, "/api/v1/users", map[string]any{
		"name": "X", "email": "x@example.go.id", "password": "rahasia123", "role": "user", "location": "Y",
	}, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestGetUser_UnitCannotReadOthers() {
	w := s.request(http.MethodGet, "/api/v1/users/unit-b", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusForbidden, w.Code)
	s.userSvc.AssertNotCalled(s.T(), "GetUserByID", mock.Anything, "unit-b")
}

func (s *HandlerTestSuite) TestGetMe() {
	s.userSvc.On("GetUserByID", mock.Anything, "unit-a").Return(unitUser(), nil).Once()

	w := s.request(http.MethodGet, "/api/v1/users/me", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusOK, w.Code)
	s.Equal("Puskeswan Sukamaju", s.decode(w).Data.(map[string]any)["location"])
}

func (s *HandlerTestSuite) TestListUsers_Forbidden() {
	s.userSvc.On("ListUsers", mock.Anything, 20, 0, actorWithID("unit-a")).Return(nil, apperrors.ErrForbidden).Once()

	w := s.request(http.MethodGet, "/api/v1/users", nil, s.tokenFor("unit-a", domain.UserRoleUser))

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestDeleteUser_PartialCascade() {
	s.userSvc.On("DeleteUser", mock.Anything, "unit-a", actorWithID("admin-1")).
		Return(fmt.Errorf("delete unit ledger: %w", apperrors.ErrPartialCascade)).Once()

	w := s.request(http.MethodDelete, "/api/v1/users/unit-a", nil, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("The unit's ledger could not be removed; the user was not deleted", s.decode(w).Error)
}

func (s *HandlerTestSuite) TestDeleteUser_Success() {
	s.userSvc.On("DeleteUser", mock.Anything, "unit-a", actorWithID("admin-1")).Return(nil).Once()

	w := s.request(http.MethodDelete, "/api/v1/users/unit-a", nil, s.tokenFor("admin-1", domain.UserRoleAdmin))

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestOfficialsSettings() {
	settings := &domain.OfficialsSettings{PartitionKey: "unit-a", HeadOfficialName: "drh. Siti"}
	s.settingsSvc.On("GetOfficialsSettings", mock.Anything, actorWithID("unit-a")).Return(settings, nil).Once()
	req := dto.UpdateOfficialsRequest{HeadOfficialName: "drh. Siti", KeeperOfficialName: "Budi"}
	s.settingsSvc.On("UpdateOfficialsSettings", mock.Anything, req, actorWithID("unit-a")).Return(settings, nil).Once()

	token := s.tokenFor("unit-a", domain.UserRoleUser)
	w := s.request(http.MethodGet, "/api/v1/settings/officials", nil, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("drh. Siti", s.decode(w).Data.(map[string]any)["headOfficialName"])

	w = s.request(http.MethodPut, "/api/v1/settings/officials", req, token)
	s.Equal(http.StatusOK, w.Code)
}
