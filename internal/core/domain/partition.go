package domain

import "github.com/SscSPs/stock_opname_app/internal/apperrors"

// AdminPartitionKey identifies the shared admin ledger in settings and notifications.
const AdminPartitionKey = "admin-partition"

// LedgerView selects which partition an admin reads.
type LedgerView int

const (
	// ViewOwn is the actor's own ledger.
	ViewOwn LedgerView = iota
	// ViewMonitoring is the admin's read-only view over every unit ledger.
	ViewMonitoring
)

// LedgerScope is the row predicate an actor is confined to.
type LedgerScope struct {
	OwnerRole   OwnerRole
	OwnerUnitID string // empty means any owner within OwnerRole
	Writable    bool
}

// ScopeFor resolves the partition an actor may touch for the given view.
func ScopeFor(actor *ActingUser, view LedgerView) (LedgerScope, error) {
	if actor == nil || actor.ID == "" {
		return LedgerScope{}, apperrors.ErrUnauthenticated
	}
	switch actor.Role {
	case UserRoleAdmin:
		if view == ViewMonitoring {
			return LedgerScope{OwnerRole: OwnerRoleUnit}, nil
		}
		return LedgerScope{OwnerRole: OwnerRoleAdmin, Writable: true}, nil
	case UserRoleUser:
		if view == ViewMonitoring {
			return LedgerScope{}, apperrors.ErrForbidden
		}
		return LedgerScope{OwnerRole: OwnerRoleUnit, OwnerUnitID: actor.ID, Writable: true}, nil
	default:
		return LedgerScope{}, apperrors.ErrForbidden
	}
}

// WritableScopeFor is ScopeFor(actor, ViewOwn).
func WritableScopeFor(actor *ActingUser) (LedgerScope, error) {
	return ScopeFor(actor, ViewOwn)
}

// NarrowToUnit restricts a monitoring scope to a single unit.
func (s LedgerScope) NarrowToUnit(unitID string) LedgerScope {
	if unitID == "" || s.OwnerRole != OwnerRoleUnit || s.OwnerUnitID != "" {
		return s
	}
	s.OwnerUnitID = unitID
	return s
}

// Allows reports whether the entry falls inside the scope.
func (s LedgerScope) Allows(e LedgerEntry) bool {
	if e.OwnerRole != s.OwnerRole {
		return false
	}
	return s.OwnerUnitID == "" || e.OwnerUnitID == s.OwnerUnitID
}

// CoversPartition reports whether a change in the given partition is visible in the scope.
func (s LedgerScope) CoversPartition(partitionKey string) bool {
	if s.OwnerRole == OwnerRoleAdmin {
		return partitionKey == AdminPartitionKey
	}
	if partitionKey == AdminPartitionKey {
		return false
	}
	return s.OwnerUnitID == "" || s.OwnerUnitID == partitionKey
}

// Key is a stable identifier for the scope.
func (s LedgerScope) Key() string {
	if s.OwnerUnitID == "" {
		return string(s.OwnerRole) + ":*"
	}
	return string(s.OwnerRole) + ":" + s.OwnerUnitID
}

// PartitionKeyFor returns the settings partition of an actor.
func PartitionKeyFor(actor *ActingUser) string {
	if actor.IsAdmin() {
		return AdminPartitionKey
	}
	return actor.ID
}
