package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by login email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user profile together with its auth identity.
	SaveUser(ctx context.Context, user domain.User, identity domain.AuthIdentity) error

	// UpdateUser updates an existing user's profile.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserLifecycleManager defines the steps of removing a user.
// Steps are separate so callers can order them and stop on the first failure.
type UserLifecycleManager interface {
	// DeleteAuthIdentity removes the credentials of a user.
	DeleteAuthIdentity(ctx context.Context, userID string) error

	// DeleteUser removes the user profile.
	DeleteUser(ctx context.Context, userID string) error
}

// AuthIdentityStore manages credentials and refresh tokens.
type AuthIdentityStore interface {
	// FindIdentityByEmail retrieves the credential record for a login email.
	FindIdentityByEmail(ctx context.Context, email string) (*domain.AuthIdentity, error)

	// FindIdentityByUserID retrieves the credential record of a user.
	FindIdentityByUserID(ctx context.Context, userID string) (*domain.AuthIdentity, error)

	// UpdateRefreshToken stores the hash and expiry of a newly issued refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error

	// ClearRefreshToken revokes the refresh token of a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
	AuthIdentityStore
}
