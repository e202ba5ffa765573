package models

import (
	"time"
)

// User is a row of the users table.
type User struct {
	UserID   string  `db:"user_id"`
	Name     string  `db:"name"`
	Email    string  `db:"email"`
	Role     string  `db:"role"`
	Location string  `db:"location"`
	NIP      *string `db:"nip"`
	AuditFields
}

// AuthIdentity is a row of the auth_identities table.
// Only the hash of the current refresh token is kept.
type AuthIdentity struct {
	UserID                 string     `db:"user_id"`
	Email                  string     `db:"email"`
	PasswordHash           string     `db:"password_hash"`
	RefreshTokenHash       *string    `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
	CreatedAt              time.Time  `db:"created_at"`
	LastUpdatedAt          time.Time  `db:"last_updated_at"`
}
