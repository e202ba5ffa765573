package domain

import "time"

// OfficialsSettings holds the signatories printed on reports of one partition.
type OfficialsSettings struct {
	PartitionKey       string    `json:"partitionKey"` // AdminPartitionKey or a unit id
	HeadOfficialName   string    `json:"headOfficialName"`
	HeadOfficialNIP    string    `json:"headOfficialNip"`
	KeeperOfficialName string    `json:"keeperOfficialName"`
	KeeperOfficialNIP  string    `json:"keeperOfficialNip"`
	OfficeName         string    `json:"officeName"`
	OfficeAddress      string    `json:"officeAddress"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy      string    `json:"lastUpdatedBy"`
}
