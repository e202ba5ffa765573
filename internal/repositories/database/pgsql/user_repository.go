package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_opname_app/internal/models"
	"github.com/SscSPs/stock_opname_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, name, email, role, location, nip, created_at, created_by, last_updated_at, last_updated_by`

const identityColumns = `user_id, email, password_hash, refresh_token_hash, refresh_token_expiry_time, created_at, last_updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser inserts the profile and its credentials in one transaction.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User, identity domain.AuthIdentity) error {
	modelUser := mapping.ToModelUser(user)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		modelUser.UserID,
		modelUser.Name,
		modelUser.Email,
		modelUser.Role,
		modelUser.Location,
		modelUser.NIP,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "save user")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO auth_identities (user_id, email, password_hash, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);`,
		identity.UserID,
		identity.Email,
		identity.PasswordHash,
		identity.CreatedAt,
		identity.LastUpdatedAt,
	)
	if err != nil {
		return mapError(err, "save auth identity")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) findUser(ctx context.Context, column string, value string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1;`, userColumns, column)
	rows, err := r.Pool.Query(ctx, query, value)
	if err != nil {
		return nil, mapError(err, "find user")
	}
	modelUser, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "find user")
	}
	domainUser := mapping.ToDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "user_id", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, "email", email)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY role ASC, name ASC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err, "query users")
	}
	modelUsers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapError(err, "scan users")
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
        UPDATE users
        SET name = $1, role = $2, location = $3, nip = $4, last_updated_at = $5, last_updated_by = $6
        WHERE user_id = $7;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelUser.Name,
		modelUser.Role,
		modelUser.Location,
		modelUser.NIP,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
		modelUser.UserID,
	)
	if err != nil {
		return mapError(err, "update user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) DeleteAuthIdentity(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM auth_identities WHERE user_id = $1;`, userID)
	if err != nil {
		return mapError(err, "delete auth identity")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("auth identity of %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return mapError(err, "delete user")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) findIdentity(ctx context.Context, column, value string) (*domain.AuthIdentity, error) {
	query := fmt.Sprintf(`SELECT %s FROM auth_identities WHERE %s = $1;`, identityColumns, column)
	rows, err := r.Pool.Query(ctx, query, value)
	if err != nil {
		return nil, mapError(err, "find auth identity")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.AuthIdentity])
	if err != nil {
		return nil, mapError(err, "find auth identity")
	}
	identity := mapping.ToDomainAuthIdentity(m)
	return &identity, nil
}

func (r *PgxUserRepository) FindIdentityByEmail(ctx context.Context, email string) (*domain.AuthIdentity, error) {
	return r.findIdentity(ctx, "email", email)
}

func (r *PgxUserRepository) FindIdentityByUserID(ctx context.Context, userID string) (*domain.AuthIdentity, error) {
	return r.findIdentity(ctx, "user_id", userID)
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE auth_identities
		SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = NOW()
		WHERE user_id = $3;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiresAt, userID)
	if err != nil {
		return mapError(err, "update refresh token")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("auth identity of %s not found: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE auth_identities
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = NOW()
		WHERE user_id = $1;
	`
	if _, err := r.Pool.Exec(ctx, query, userID); err != nil {
		return mapError(err, "clear refresh token")
	}
	return nil
}
