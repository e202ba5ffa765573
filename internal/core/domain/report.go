package domain

// ReportRow is a flat, print-ready row of the stock opname report.
type ReportRow struct {
	No                   int    `json:"no"`
	EntryID              string `json:"entryId"`
	MedicineName         string `json:"medicineName"`
	Category             string `json:"category"`
	UnitOfMeasure        string `json:"unitOfMeasure"`
	OriginOfGoods        string `json:"originOfGoods"`
	ReconciliationDate   string `json:"reconciliationDate"`
	ExpiryDate           string `json:"expiryDate"`
	PriorGood            int    `json:"priorGood"`
	PriorDamaged         int    `json:"priorDamaged"`
	PriorTotal           int    `json:"priorTotal"`
	InGood               int    `json:"inGood"`
	InDamaged            int    `json:"inDamaged"`
	InTotal              int    `json:"inTotal"`
	OutGood              int    `json:"outGood"`
	OutDamaged           int    `json:"outDamaged"`
	OutTotal             int    `json:"outTotal"`
	EndingGood           int    `json:"endingGood"`
	EndingDamaged        int    `json:"endingDamaged"`
	EndingTotal          int    `json:"endingTotal"`
	Notes                string `json:"notes"`
	OwnerUnitDisplayName string `json:"ownerUnitDisplayName"`
}

// StockReport is a report extraction together with its letterhead data.
type StockReport struct {
	CutoffDate string
	Rows       []ReportRow
	Officials  OfficialsSettings
}
