package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/platform/config"
	"github.com/SscSPs/stock_opname_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	BaseService
	cfg         *config.Config
	userService portssvc.UserReaderSvc
	identities  portsrepo.AuthIdentityStore
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserReaderSvc, identities portsrepo.AuthIdentityStore) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
		identities:  identities,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token carrying the user's role and unit.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), user.Name, user.Location,
		s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token")
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new opaque refresh token. Only its hash is stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.NewRefreshToken()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token")
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return rawRefreshToken, time.Now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateAndParseRefreshToken checks a raw refresh token against the stored hash.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	identity, err := s.identities.FindIdentityByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to retrieve identity for refresh token validation: %w", err)
	}

	if identity.RefreshTokenHash == nil || identity.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if time.Now().After(*identity.RefreshTokenExpiryTime) {
		s.LogInfo(ctx, "Stored refresh token has expired")
		return nil, apperrors.ErrUnauthenticated
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, *identity.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
