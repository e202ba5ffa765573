package domain

import "time"

// UserRole is the application-wide role of a user.
type UserRole string

const (
	// UserRoleAdmin is the central authority (Dinas).
	UserRoleAdmin UserRole = "admin"
	// UserRoleUser is a field unit (UPTD).
	UserRoleUser UserRole = "user"
)

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleUser
}

// User represents a user of the application in the domain.
// For role user the record doubles as the unit profile.
type User struct {
	UserID   string   `json:"userID"` // Primary Key (UUID)
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Location string   `json:"location"` // Display name of the unit
	NIP      *string  `json:"nip,omitempty"`
	AuditFields
}

// AuthIdentity is the credential record backing a User.
type AuthIdentity struct {
	UserID                 string
	Email                  string
	PasswordHash           string
	RefreshTokenHash       *string
	RefreshTokenExpiryTime *time.Time
	CreatedAt              time.Time
	LastUpdatedAt          time.Time
}

// AuditFields records which account created and last changed a user record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps a record created by actorID at the given time.
func NewAuditFields(actorID string, at time.Time) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: actorID, LastUpdatedAt: at, LastUpdatedBy: actorID}
}

// Touch records a change by actorID.
func (a *AuditFields) Touch(actorID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actorID
}

// ActingUser is the authenticated identity performing an operation.
type ActingUser struct {
	ID       string
	Name     string
	Location string
	Role     UserRole
}

// IsAdmin reports whether the actor belongs to the central authority.
func (a *ActingUser) IsAdmin() bool {
	return a != nil && a.Role == UserRoleAdmin
}

// ActingUserFrom builds the actor view of a stored user.
func ActingUserFrom(u *User) *ActingUser {
	if u == nil {
		return nil
	}
	return &ActingUser{
		ID:       u.UserID,
		Name:     u.Name,
		Location: u.Location,
		Role:     u.Role,
	}
}
