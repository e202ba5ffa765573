package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	unitData    portsrepo.LedgerLifecycleManager
	notifier    portssvc.ChangeNotifier
	hashFn      func(string) (string, error)
	maxPageSize int
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUnitDataRemover enables the ledger cascade of DeleteUser.
func WithUnitDataRemover(repo portsrepo.LedgerLifecycleManager) UserServiceOption {
	return func(s *userService) {
		s.unitData = repo
	}
}

// WithUserNotifier announces removed unit partitions.
func WithUserNotifier(notifier portssvc.ChangeNotifier) UserServiceOption {
	return func(s *userService) {
		s.notifier = notifier
	}
}

// WithPasswordHasher overrides bcrypt, mainly to keep tests fast.
func WithPasswordHasher(fn func(string) (string, error)) UserServiceOption {
	return func(s *userService) {
		s.hashFn = fn
	}
}

// NewUserService creates a new user service with the provided options
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:    userRepo,
		hashFn:      utils.HashPassword,
		maxPageSize: 100,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor *domain.ActingUser) (*domain.User, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	verr := &apperrors.ValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		verr.Add("email", "must be a valid email address")
	}
	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		verr.Add("role", "must be admin or user")
	}
	if msg := utils.CheckPasswordPolicy(req.Password); msg != "" {
		verr.Add("password", msg)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s is already registered: %w", email, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing email")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hash, err := s.hashFn(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:   uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Role:     role,
		Location: strings.TrimSpace(req.Location),
		NIP:      trimmedOrNil(req.NIP),
		AuditFields: domain.NewAuditFields(actor.ID, now),
	}
	identity := domain.AuthIdentity{
		UserID:        user.UserID,
		Email:         email,
		PasswordHash:  hash,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.userRepo.SaveUser(ctx, user, identity); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.LogInfo(ctx, "User created", slog.String("new_user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int, actor *domain.ActingUser) ([]domain.User, error) {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// UpdateUser lets admins edit anyone and users edit their own profile.
// Only admins may change roles.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, actor *domain.ActingUser) (*domain.User, error) {
	if err := s.RequireActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor.ID != userID || req.Role != nil) {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	updated := *user
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		updated.Location = strings.TrimSpace(*req.Location)
	}
	if req.NIP != nil {
		updated.NIP = trimmedOrNil(req.NIP)
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.IsValid() {
			return nil, apperrors.NewValidationError("role", "must be admin or user")
		}
		if actor.ID == userID && role != domain.UserRoleAdmin {
			return nil, apperrors.NewValidationError("role", "admins cannot demote themselves")
		}
		updated.Role = role
	}
	if updated.Name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}

	if updated.Name == user.Name && updated.Location == user.Location &&
		equalOptional(updated.NIP, user.NIP) && updated.Role == user.Role {
		return user, nil
	}

	updated.Touch(actor.ID, time.Now())
	if err := s.userRepo.UpdateUser(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("target_user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &updated, nil
}

// DeleteUser removes every ledger row the user owns (and a unit's officials
// settings) in one transaction, then its identity, then its profile. When the
// first step fails nothing else is touched.
func (s *userService) DeleteUser(ctx context.Context, userID string, actor *domain.ActingUser) error {
	if err := s.RequireAdmin(ctx, actor); err != nil {
		return err
	}
	if userID == actor.ID {
		return apperrors.NewValidationError("id", "admins cannot delete themselves")
	}

	target, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}

	if s.unitData != nil {
		removed, err := s.unitData.DeleteUnitData(ctx, userID)
		if err != nil {
			s.LogError(ctx, err, "Ledger removal failed, user kept", slog.String("target_user_id", userID))
			return fmt.Errorf("%w: %w", apperrors.ErrPartialCascade, err)
		}
		s.LogInfo(ctx, "Owned ledger entries removed", slog.String("target_user_id", userID), slog.Int64("entries", removed))
	}

	if err := s.userRepo.DeleteAuthIdentity(ctx, userID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to delete auth identity", slog.String("target_user_id", userID))
		return fmt.Errorf("failed to delete auth identity: %w", err)
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user profile", slog.String("target_user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.LogInfo(ctx, "User deleted", slog.String("target_user_id", userID))
	if s.notifier != nil {
		partition := userID
		if target.Role == domain.UserRoleAdmin {
			partition = domain.AdminPartitionKey
		}
		if err := s.notifier.Publish(ctx, partition); err != nil {
			s.LogError(ctx, err, "Failed to publish user removal")
		}
	}
	return nil
}

// AuthenticateUser checks email and password. Unknown emails and wrong
// passwords fail the same way.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	identity, err := s.userRepo.FindIdentityByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		s.LogError(ctx, err, "Failed to load identity")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if !utils.CheckPasswordHash(password, identity.PasswordHash) {
		s.LogInfo(ctx, "Password mismatch", slog.String("user_id", identity.UserID))
		return nil, apperrors.ErrUnauthenticated
	}
	user, err := s.userRepo.FindUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
