package models

import "time"

// OfficialsSettings is a row of the officials_settings table.
type OfficialsSettings struct {
	PartitionKey       string    `db:"partition_key"`
	HeadOfficialName   string    `db:"head_official_name"`
	HeadOfficialNIP    string    `db:"head_official_nip"`
	KeeperOfficialName string    `db:"keeper_official_name"`
	KeeperOfficialNIP  string    `db:"keeper_official_nip"`
	OfficeName         string    `db:"office_name"`
	OfficeAddress      string    `db:"office_address"`
	LastUpdatedAt      time.Time `db:"last_updated_at"`
	LastUpdatedBy      string    `db:"last_updated_by"`
}
