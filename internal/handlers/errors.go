package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service errors onto status codes and the response envelope.
// Store detail is logged, never returned.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("error", err.Error()))

	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Warn("Validation failed: " + action)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.FailFields("Validation failed", verr.Fields))
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed: " + action)
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, apperrors.ErrUnauthenticated):
		logger.Warn("Unauthenticated: " + action)
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Authentication required"))
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden: " + action)
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("You do not have access to this resource"))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Info("Not found: " + action)
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Fail("Resource not found"))
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Info("Duplicate: " + action)
		c.AbortWithStatusJSON(http.StatusConflict, dto.Fail("Resource already exists"))
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Lot busy: " + action)
		c.AbortWithStatusJSON(http.StatusConflict, dto.Fail("Another change to this stock lot is in progress, please retry"))
	case errors.Is(err, apperrors.ErrPartialCascade):
		logger.Error("Cascade aborted: " + action)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("The unit's ledger could not be removed; the user was not deleted"))
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("Store unavailable: " + action)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.Fail("Service temporarily unavailable"))
	case errors.Is(err, context.Canceled):
		logger.Info("Request cancelled: " + action)
		c.Abort()
	default:
		logger.Error("Failed to " + action)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Failed to "+action))
	}
}

// respondBindError answers a request that failed JSON or query binding.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.FailFields("Validation failed", fields))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

// actingUser fetches the authenticated actor or answers 401.
func actingUser(c *gin.Context) (*domain.ActingUser, bool) {
	actor, ok := middleware.GetActingUser(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Acting user not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return nil, false
	}
	return actor, true
}
