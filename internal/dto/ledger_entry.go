package dto

import (
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// SubmitLedgerEntryRequest is the candidate of a stock opname entry.
// It carries no derived totals; those are always computed by the server.
type SubmitLedgerEntryRequest struct {
	MedicineName       string     `json:"medicineName" binding:"required,notblank,min=2,max=200"`
	Category           string     `json:"category" binding:"max=100"`
	UnitOfMeasure      string     `json:"unitOfMeasure" binding:"max=50"`
	OriginOfGoods      string     `json:"originOfGoods" binding:"max=200"`
	ReconciliationDate *DateInput `json:"reconciliationDate" binding:"required"`
	ExpiryDate         *DateInput `json:"expiryDate"`
	PriorGood          Quantity   `json:"priorGood" binding:"min=0"`
	PriorDamaged       Quantity   `json:"priorDamaged" binding:"min=0"`
	InGood             Quantity   `json:"inGood" binding:"min=0"`
	InDamaged          Quantity   `json:"inDamaged" binding:"min=0"`
	OutGood            Quantity   `json:"outGood" binding:"min=0"`
	OutDamaged         Quantity   `json:"outDamaged" binding:"min=0"`
	Notes              string     `json:"notes" binding:"max=1000"`
	// CarryForward makes the server fill the prior balance from the latest
	// entry of the same lot instead of trusting PriorGood/PriorDamaged.
	CarryForward bool `json:"carryForward"`
}

// LedgerEntryResponse is the API view of a ledger entry.
type LedgerEntryResponse struct {
	ID                   string     `json:"id"`
	MedicineName         string     `json:"medicineName"`
	Category             string     `json:"category"`
	UnitOfMeasure        string     `json:"unitOfMeasure"`
	OriginOfGoods        string     `json:"originOfGoods"`
	ReconciliationDate   time.Time  `json:"reconciliationDate"`
	ExpiryDate           *time.Time `json:"expiryDate,omitempty"`
	PriorGood            int        `json:"priorGood"`
	PriorDamaged         int        `json:"priorDamaged"`
	PriorTotal           int        `json:"priorTotal"`
	InGood               int        `json:"inGood"`
	InDamaged            int        `json:"inDamaged"`
	InTotal              int        `json:"inTotal"`
	OutGood              int        `json:"outGood"`
	OutDamaged           int        `json:"outDamaged"`
	OutTotal             int        `json:"outTotal"`
	EndingGood           int        `json:"endingGood"`
	EndingDamaged        int        `json:"endingDamaged"`
	EndingTotal          int        `json:"endingTotal"`
	Notes                string     `json:"notes"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
	OwnerUnitID          string     `json:"ownerUnitId"`
	OwnerUnitName        string     `json:"ownerUnitName"`
	OwnerUnitDisplayName string     `json:"ownerUnitDisplayName"`
	OwnerRole            string     `json:"ownerRole"`
}

// ToLedgerEntryResponse converts a domain entry.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:                   e.EntryID,
		MedicineName:         e.MedicineName,
		Category:             e.Category,
		UnitOfMeasure:        e.UnitOfMeasure,
		OriginOfGoods:        e.OriginOfGoods,
		ReconciliationDate:   e.ReconciliationDate,
		ExpiryDate:           e.ExpiryDate,
		PriorGood:            e.PriorGood,
		PriorDamaged:         e.PriorDamaged,
		PriorTotal:           e.PriorTotal,
		InGood:               e.InGood,
		InDamaged:            e.InDamaged,
		InTotal:              e.InTotal,
		OutGood:              e.OutGood,
		OutDamaged:           e.OutDamaged,
		OutTotal:             e.OutTotal,
		EndingGood:           e.EndingGood,
		EndingDamaged:        e.EndingDamaged,
		EndingTotal:          e.EndingTotal,
		Notes:                e.Notes,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
		OwnerUnitID:          e.OwnerUnitID,
		OwnerUnitName:        e.OwnerUnitName,
		OwnerUnitDisplayName: e.OwnerUnitDisplayName,
		OwnerRole:            string(e.OwnerRole),
	}
}

// ToLedgerEntryResponses converts a slice, never returning nil.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}

// ListLedgerEntriesParams defines query parameters for listing entries.
type ListLedgerEntriesParams struct {
	Limit        int     `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken    *string `form:"nextToken"`
	MedicineName string  `form:"medicineName"`
}

// ListLedgerEntriesResponse is one page of entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// CarryForwardParams are the query parameters of a carry-forward lookup.
type CarryForwardParams struct {
	MedicineName string `form:"medicineName" binding:"required"`
	ExpiryDate   string `form:"expiryDate"`
	ExcludeID    string `form:"excludeId"`
}

// CarryForwardResponse is the starting balance suggested for a new entry.
type CarryForwardResponse struct {
	EndingGood    int `json:"endingGood"`
	EndingDamaged int `json:"endingDamaged"`
}
