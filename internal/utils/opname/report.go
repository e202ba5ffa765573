package opname

import (
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// ReportDateLayout is used for dates printed on reports.
const ReportDateLayout = "02-01-2006"

// EndOfDay returns the last instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// BuildReportRows keeps entries up to the end of the cutoff day, takes the
// final snapshot and flattens it into numbered rows.
func BuildReportRows(entries []domain.LedgerEntry, cutoffDate time.Time) []domain.ReportRow {
	limit := EndOfDay(cutoffDate)
	eligible := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if !e.ReconciliationDate.After(limit) {
			eligible = append(eligible, e)
		}
	}

	snapshot := FinalSnapshot(eligible)
	rows := make([]domain.ReportRow, 0, len(snapshot))
	for i, e := range snapshot {
		rows = append(rows, ToReportRow(i+1, e))
	}
	return rows
}

// ToReportRow flattens one entry.
func ToReportRow(no int, e domain.LedgerEntry) domain.ReportRow {
	row := domain.ReportRow{
		No:                   no,
		EntryID:              e.EntryID,
		MedicineName:         e.MedicineName,
		Category:             e.Category,
		UnitOfMeasure:        e.UnitOfMeasure,
		OriginOfGoods:        e.OriginOfGoods,
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
		OwnerUnitDisplayName: e.OwnerUnitDisplayName,
	}
	if !e.ReconciliationDate.IsZero() {
		row.ReconciliationDate = FormatDate(e.ReconciliationDate, ReportDateLayout)
	}
	if e.ExpiryDate != nil {
		row.ExpiryDate = FormatDate(*e.ExpiryDate, ReportDateLayout)
	}
	return row
}

// ReportTotals sums the quantity columns of a report.
type ReportTotals struct {
	PriorTotal  int
	InTotal     int
	OutTotal    int
	EndingGood  int
	EndingDmg   int
	EndingTotal int
}

// SumRows totals the quantity columns.
func SumRows(rows []domain.ReportRow) ReportTotals {
	var t ReportTotals
	for _, r := range rows {
		t.PriorTotal += r.PriorTotal
		t.InTotal += r.InTotal
		t.OutTotal += r.OutTotal
		t.EndingGood += r.EndingGood
		t.EndingDmg += r.EndingDamaged
		t.EndingTotal += r.EndingTotal
	}
	return t
}
