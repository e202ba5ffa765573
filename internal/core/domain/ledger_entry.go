package domain

import (
	"strings"
	"time"
)

// OwnerRole tells which partition a ledger entry belongs to.
type OwnerRole string

const (
	OwnerRoleAdmin OwnerRole = "admin"
	OwnerRoleUnit  OwnerRole = "unit"
)

// OwnerRoleFor maps a user role to the ledger partition it writes into.
func OwnerRoleFor(role UserRole) OwnerRole {
	if role == UserRoleAdmin {
		return OwnerRoleAdmin
	}
	return OwnerRoleUnit
}

// LedgerEntry is one stock opname record for a medicine lot.
// Totals and ending balances are derived; call Recompute before persisting.
type LedgerEntry struct {
	EntryID            string     `json:"id"`
	MedicineName       string     `json:"medicineName"`
	Category           string     `json:"category"`
	UnitOfMeasure      string     `json:"unitOfMeasure"`
	OriginOfGoods      string     `json:"originOfGoods"`
	ReconciliationDate time.Time  `json:"reconciliationDate"`
	ExpiryDate         *time.Time `json:"expiryDate,omitempty"`

	PriorGood    int `json:"priorGood"`
	PriorDamaged int `json:"priorDamaged"`
	PriorTotal   int `json:"priorTotal"`

	InGood    int `json:"inGood"`
	InDamaged int `json:"inDamaged"`
	InTotal   int `json:"inTotal"`

	OutGood    int `json:"outGood"`
	OutDamaged int `json:"outDamaged"`
	OutTotal   int `json:"outTotal"`

	EndingGood    int `json:"endingGood"`
	EndingDamaged int `json:"endingDamaged"`
	EndingTotal   int `json:"endingTotal"`

	Notes string `json:"notes"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// Owner snapshot, fixed from the acting user at write time.
	OwnerUnitID          string    `json:"ownerUnitId"`
	OwnerUnitName        string    `json:"ownerUnitName"`
	OwnerUnitDisplayName string    `json:"ownerUnitDisplayName"`
	OwnerRole            OwnerRole `json:"ownerRole"`
}

// CarryForward is the ending balance of the latest prior entry of a lot.
type CarryForward struct {
	EndingGood    int `json:"endingGood"`
	EndingDamaged int `json:"endingDamaged"`
}

// Recompute derives every total and ending balance from the six input quantities.
// Ending balances are allowed to go negative.
func (e *LedgerEntry) Recompute() {
	e.PriorTotal = e.PriorGood + e.PriorDamaged
	e.InTotal = e.InGood + e.InDamaged
	e.OutTotal = e.OutGood + e.OutDamaged
	e.EndingGood = e.PriorGood + e.InGood - e.OutGood
	e.EndingDamaged = e.PriorDamaged + e.InDamaged - e.OutDamaged
	e.EndingTotal = e.EndingGood + e.EndingDamaged
}

// StampOwner copies the actor identity onto the entry.
func (e *LedgerEntry) StampOwner(actor *ActingUser) {
	e.OwnerUnitID = actor.ID
	e.OwnerUnitName = actor.Name
	e.OwnerUnitDisplayName = actor.Location
	e.OwnerRole = OwnerRoleFor(actor.Role)
}

// PartitionKey returns the settings/notification partition the entry lives in.
func (e LedgerEntry) PartitionKey() string {
	if e.OwnerRole == OwnerRoleAdmin {
		return AdminPartitionKey
	}
	return e.OwnerUnitID
}

// CarryForward returns the entry's ending balance as the next starting balance.
func (e LedgerEntry) CarryForward() CarryForward {
	return CarryForward{EndingGood: e.EndingGood, EndingDamaged: e.EndingDamaged}
}

// SameExpiry compares two optional expiry instants exactly. nil only matches nil.
func SameExpiry(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// IsNewerThan is the total order used wherever "latest" is computed:
// reconciliation date desc, then created at desc, then id asc.
func (e LedgerEntry) IsNewerThan(other LedgerEntry) bool {
	if !e.ReconciliationDate.Equal(other.ReconciliationDate) {
		return e.ReconciliationDate.After(other.ReconciliationDate)
	}
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.After(other.CreatedAt)
	}
	return e.EntryID < other.EntryID
}

// LotKey identifies the stock lot of the entry inside its partition.
// Writes on the same lot are serialised.
func (e LedgerEntry) LotKey() string {
	expiry := "none"
	if e.ExpiryDate != nil {
		expiry = e.ExpiryDate.UTC().Format(time.RFC3339Nano)
	}
	return strings.Join([]string{e.PartitionKey(), e.MedicineName, expiry}, "|")
}
