package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireActor fails with ErrUnauthenticated when no actor is attached.
func (s *BaseService) RequireActor(actor *domain.ActingUser) error {
	if actor == nil || actor.ID == "" {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin fails unless the actor belongs to the central authority.
func (s *BaseService) RequireAdmin(ctx context.Context, actor *domain.ActingUser) error {
	if err := s.RequireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		s.LogDebug(ctx, "Admin action refused", slog.String("user_id", actor.ID), slog.String("role", string(actor.Role)))
		return apperrors.ErrForbidden
	}
	return nil
}
