package mapping

import (
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its row.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:              d.EntryID,
		MedicineName:         d.MedicineName,
		Category:             d.Category,
		UnitOfMeasure:        d.UnitOfMeasure,
		OriginOfGoods:        d.OriginOfGoods,
		ReconciliationDate:   d.ReconciliationDate,
		ExpiryDate:           d.ExpiryDate,
		PriorGood:            d.PriorGood,
		PriorDamaged:         d.PriorDamaged,
		PriorTotal:           d.PriorTotal,
		InGood:               d.InGood,
		InDamaged:            d.InDamaged,
		InTotal:              d.InTotal,
		OutGood:              d.OutGood,
		OutDamaged:           d.OutDamaged,
		OutTotal:             d.OutTotal,
		EndingGood:           d.EndingGood,
		EndingDamaged:        d.EndingDamaged,
		EndingTotal:          d.EndingTotal,
		Notes:                d.Notes,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
		OwnerUnitID:          d.OwnerUnitID,
		OwnerUnitName:        d.OwnerUnitName,
		OwnerUnitDisplayName: d.OwnerUnitDisplayName,
		OwnerRole:            string(d.OwnerRole),
	}
}

// ToDomainLedgerEntry converts a ledger_entries row.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:              m.EntryID,
		MedicineName:         m.MedicineName,
		Category:             m.Category,
		UnitOfMeasure:        m.UnitOfMeasure,
		OriginOfGoods:        m.OriginOfGoods,
		ReconciliationDate:   m.ReconciliationDate,
		ExpiryDate:           m.ExpiryDate,
		PriorGood:            m.PriorGood,
		PriorDamaged:         m.PriorDamaged,
		PriorTotal:           m.PriorTotal,
		InGood:               m.InGood,
		InDamaged:            m.InDamaged,
		InTotal:              m.InTotal,
		OutGood:              m.OutGood,
		OutDamaged:           m.OutDamaged,
		OutTotal:             m.OutTotal,
		EndingGood:           m.EndingGood,
		EndingDamaged:        m.EndingDamaged,
		EndingTotal:          m.EndingTotal,
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		OwnerUnitID:          m.OwnerUnitID,
		OwnerUnitName:        m.OwnerUnitName,
		OwnerUnitDisplayName: m.OwnerUnitDisplayName,
		OwnerRole:            domain.OwnerRole(m.OwnerRole),
	}
}

// ToDomainLedgerEntrySlice converts rows in order.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
