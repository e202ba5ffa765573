package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/utils"
	"github.com/stretchr/testify/mock"
)

func (s *HandlerTestSuite) refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == s.cfg.RefreshTokenCookieName {
			return c
		}
	}
	return nil
}

func (s *HandlerTestSuite) expectTokenIssue(rawRefresh string) {
	user := unitUser()
	accessExpiry := time.Now().Add(time.Hour)
	refreshExpiry := time.Now().Add(7 * 24 * time.Hour)
	s.tokenSvc.On("GenerateAccessToken", mock.Anything, user).Return("access-token", accessExpiry, nil).Once()
	s.tokenSvc.On("GenerateRefreshToken", mock.Anything, user).Return(rawRefresh, refreshExpiry, nil).Once()
	s.userSvc.On("UpdateRefreshToken", mock.Anything, user.UserID, utils.HashRefreshToken(rawRefresh), refreshExpiry).Return(nil).Once()
}

func (s *HandlerTestSuite) TestLogin_SetsRefreshCookie() {
	s.userSvc.On("AuthenticateUser", mock.Anything, "sukamaju@example.go.id", "rahasia123").Return(unitUser(), nil).Once()
	s.expectTokenIssue("raw-refresh")

	w := s.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "sukamaju@example.go.id", "password": "rahasia123",
	}, "")

	s.Equal(http.StatusOK, w.Code)
	data := s.decode(w).Data.(map[string]any)
	s.Equal("access-token", data["token"])
	s.Equal("unit-a", data["user"].(map[string]any)["userID"])

	cookie := s.refreshCookie(w)
	s.Require().NotNil(cookie)
	s.Equal("unit-a.raw-refresh", cookie.Value)
	s.True(cookie.HttpOnly)
	s.True(cookie.Secure)
	s.Equal(http.SameSiteStrictMode, cookie.SameSite)
	s.Equal("/api/v1/auth", cookie.Path)
}

func (s *HandlerTestSuite) TestLogin_WrongPassword() {
	s.userSvc.On("AuthenticateUser", mock.Anything, "sukamaju@example.go.id", "salah").Return(nil, apperrors.ErrUnauthenticated).Once()

	w := s.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "sukamaju@example.go.id", "password": "salah",
	}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid email or password", s.decode(w).Error)
	s.Nil(s.refreshCookie(w))
}

func (s *HandlerTestSuite) TestRefresh_RotatesToken() {
	s.tokenSvc.On("ValidateAndParseRefreshToken", mock.Anything, "unit-a", "old-refresh").Return(unitUser(), nil).Once()
	s.expectTokenIssue("new-refresh")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "rtid", Value: "unit-a.old-refresh"})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("access-token", s.decode(w).Data.(map[string]any)["token"])
	s.Equal("unit-a.new-refresh", s.refreshCookie(w).Value)
}

func (s *HandlerTestSuite) TestRefresh_RejectsRevokedToken() {
	s.tokenSvc.On("ValidateAndParseRefreshToken", mock.Anything, "unit-a", "stale").Return(nil, apperrors.ErrUnauthenticated).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "rtid", Value: "unit-a.stale"})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
	cookie := s.refreshCookie(w)
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
	s.Less(cookie.MaxAge, 0)
}

func (s *HandlerTestSuite) TestRefresh_MissingCookie() {
	w := s.request(http.MethodPost, "/api/v1/auth/refresh", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestLogout_RevokesAndClears() {
	s.tokenSvc.On("ValidateAndParseRefreshToken", mock.Anything, "unit-a", "raw").Return(unitUser(), nil).Once()
	s.userSvc.On("ClearRefreshToken", mock.Anything, "unit-a").Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "rtid", Value: "unit-a.raw"})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNoContent, w.Code)
	s.Less(s.refreshCookie(w).MaxAge, 0)
}
