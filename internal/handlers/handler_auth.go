package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/middleware"
	"github.com/SscSPs/stock_opname_app/internal/platform/config"
	"github.com/SscSPs/stock_opname_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// RegisterAuthRoutes sets up the public authentication routes. Login is rate
// limited per client IP.
func RegisterAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade, loginLimiter *limiter.Limiter) {
	registerValidators()
	h := NewAuthHandler(userService, tokenService, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// Login godoc
// @Summary User login
// @Description Authenticates with email and password. Returns an access token and sets the refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 429 {object} dto.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid email or password"))
			return
		}
		respondError(c, err, "log in")
		return
	}

	accessToken, expiresAt, ok := h.issueTokens(c, user)
	if !ok {
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.OK(dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges the refresh cookie for a new access token. The refresh token is rotated.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} dto.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Fail("Refresh token missing"))
		return
	}
	userID, rawToken, ok := utils.SplitRefreshCookie(cookie)
	if !ok {
		h.clearRefreshCookie(c)
		c.JSON(http.StatusUnauthorized, dto.Fail("Invalid refresh token"))
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			h.clearRefreshCookie(c)
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid refresh token"))
			return
		}
		respondError(c, err, "refresh token")
		return
	}

	accessToken, expiresAt, ok := h.issueTokens(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.RefreshTokenResponse{Token: accessToken, ExpiresAt: expiresAt}))
}

// Logout godoc
// @Summary Log out
// @Description Revokes the refresh token named by the cookie and clears it.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil {
		if userID, rawToken, ok := utils.SplitRefreshCookie(cookie); ok {
			// only the holder of a valid token may revoke it
			if _, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, rawToken); err == nil {
				if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
					middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to revoke refresh token",
						slog.String("user_id", userID), slog.String("error", err.Error()))
				}
			}
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// issueTokens signs an access token, rotates the stored refresh token hash and
// sets the refresh cookie. It writes the error response itself.
func (h *AuthHandler) issueTokens(c *gin.Context, user *domain.User) (string, time.Time, bool) {
	ctx := c.Request.Context()
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "generate token")
		return "", time.Time{}, false
	}
	rawRefresh, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, err, "generate token")
		return "", time.Time{}, false
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(rawRefresh), refreshExpiry); err != nil {
		respondError(c, err, "store refresh token")
		return "", time.Time{}, false
	}
	h.setRefreshCookie(c, utils.JoinRefreshCookie(user.UserID, rawRefresh), int(time.Until(refreshExpiry).Seconds()))
	return accessToken, expiresAt, true
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, value, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	h.setRefreshCookie(c, "", -1)
}
