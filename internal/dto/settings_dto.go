package dto

// UpdateOfficialsRequest replaces the report signatories of the caller's partition.
type UpdateOfficialsRequest struct {
	HeadOfficialName   string `json:"headOfficialName" binding:"max=100"`
	HeadOfficialNIP    string `json:"headOfficialNip" binding:"max=30"`
	KeeperOfficialName string `json:"keeperOfficialName" binding:"max=100"`
	KeeperOfficialNIP  string `json:"keeperOfficialNip" binding:"max=30"`
	OfficeName         string `json:"officeName" binding:"max=200"`
	OfficeAddress      string `json:"officeAddress" binding:"max=300"`
}
