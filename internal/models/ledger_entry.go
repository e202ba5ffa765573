package models

import "time"

// LedgerEntry is a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID            string     `db:"entry_id"`
	MedicineName       string     `db:"medicine_name"`
	Category           string     `db:"category"`
	UnitOfMeasure      string     `db:"unit_of_measure"`
	OriginOfGoods      string     `db:"origin_of_goods"`
	ReconciliationDate time.Time  `db:"reconciliation_date"`
	ExpiryDate         *time.Time `db:"expiry_date"`

	PriorGood    int `db:"prior_good"`
	PriorDamaged int `db:"prior_damaged"`
	PriorTotal   int `db:"prior_total"`

	InGood    int `db:"in_good"`
	InDamaged int `db:"in_damaged"`
	InTotal   int `db:"in_total"`

	OutGood    int `db:"out_good"`
	OutDamaged int `db:"out_damaged"`
	OutTotal   int `db:"out_total"`

	EndingGood    int `db:"ending_good"`
	EndingDamaged int `db:"ending_damaged"`
	EndingTotal   int `db:"ending_total"`

	Notes     string     `db:"notes"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`

	OwnerUnitID          string `db:"owner_unit_id"`
	OwnerUnitName        string `db:"owner_unit_name"`
	OwnerUnitDisplayName string `db:"owner_unit_display_name"`
	OwnerRole            string `db:"owner_role"`
}
