package domain

import "time"

// LowStockThreshold is the ending total below which a medicine is flagged.
const LowStockThreshold = 10

// StockAlert is a display row of the dashboard alert lists.
type StockAlert struct {
	EntryID         string     `json:"entryId"`
	MedicineName    string     `json:"medicineName"`
	RemainingStock  int        `json:"remainingStock"`
	UnitDisplayName string     `json:"unitDisplayName"`
	ExpiryDate      *time.Time `json:"-"`
	ExpiryLabel     string     `json:"expiryDate,omitempty"`
}

// DashboardStats summarises the latest snapshot of every medicine in a scope.
type DashboardStats struct {
	TotalMedicineCount int           `json:"totalMedicineCount"`
	TotalUnits         int           `json:"totalUnits"`
	LowStockCount      int           `json:"lowStockCount"`
	ExpiringCount      int           `json:"expiringCount"`
	LowStockList       []StockAlert  `json:"lowStockList"`
	ExpiringList       []StockAlert  `json:"expiringList"`
	Snapshot           []LedgerEntry `json:"-"`
	GeneratedAt        time.Time     `json:"generatedAt"`
}
