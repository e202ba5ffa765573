package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and attaches the ActingUser to the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			// EventSource cannot set headers; streams pass the token as a query parameter.
			tokenString = c.Query("access_token")
		}
		if tokenString == "" {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authorization header format must be Bearer {token}"))
			return
		}

		claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail(msg))
			return
		}

		role := domain.UserRole(claims.Role)
		if claims.Subject == "" || !role.IsValid() {
			logger.Error("Token claims incomplete", slog.String("role", claims.Role))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid token claims"))
			return
		}

		actor := &domain.ActingUser{
			ID:       claims.Subject,
			Name:     claims.Name,
			Location: claims.Location,
			Role:     role,
		}
		enriched := logger.With(slog.String("user_id", actor.ID), slog.String("role", string(actor.Role)))

		ctx := WithActingUser(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(WithLogger(ctx, enriched))
		c.Next()
	}
}

// RequireRole aborts with 403 unless the actor has the given role.
// It must run after AuthMiddleware.
func RequireRole(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActingUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authentication required"))
			return
		}
		if actor.Role != role {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role check failed", slog.String("required", string(role)))
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("You do not have access to this resource"))
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
