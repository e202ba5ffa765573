package middleware

import (
	"context"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const actingUserKey = contextKey("actingUser")

// WithActingUser returns a copy of ctx carrying the authenticated actor.
func WithActingUser(ctx context.Context, actor *domain.ActingUser) context.Context {
	return context.WithValue(ctx, actingUserKey, actor)
}

// ActingUserFromCtx returns the actor stored by AuthMiddleware, or nil.
func ActingUserFromCtx(ctx context.Context) *domain.ActingUser {
	actor, _ := ctx.Value(actingUserKey).(*domain.ActingUser)
	return actor
}

// GetActingUser retrieves the authenticated actor of a request.
// It returns false when the request did not pass AuthMiddleware.
func GetActingUser(c *gin.Context) (*domain.ActingUser, bool) {
	actor := ActingUserFromCtx(c.Request.Context())
	return actor, actor != nil
}

// GetUserIDFromContext retrieves the authenticated user ID from the request.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	actor, ok := GetActingUser(c)
	if !ok {
		return "", false
	}
	return actor.ID, true
}
