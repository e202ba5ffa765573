package dto

import (
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/utils/opname"
)

// ReportParams are the query parameters of report endpoints.
type ReportParams struct {
	CutoffDate string `form:"cutoffDate"`
}

// ReportTotalsResponse are the column sums of a report.
type ReportTotalsResponse struct {
	PriorTotal    int `json:"priorTotal"`
	InTotal       int `json:"inTotal"`
	OutTotal      int `json:"outTotal"`
	EndingGood    int `json:"endingGood"`
	EndingDamaged int `json:"endingDamaged"`
	EndingTotal   int `json:"endingTotal"`
}

// StockReportResponse is the tabular stock opname report.
type StockReportResponse struct {
	CutoffDate string                   `json:"cutoffDate"`
	Rows       []domain.ReportRow       `json:"rows"`
	Totals     ReportTotalsResponse     `json:"totals"`
	Officials  domain.OfficialsSettings `json:"officials"`
}

// ToStockReportResponse converts a report with its letterhead.
func ToStockReportResponse(report *domain.StockReport) StockReportResponse {
	totals := opname.SumRows(report.Rows)
	rows := report.Rows
	if rows == nil {
		rows = []domain.ReportRow{}
	}
	return StockReportResponse{
		CutoffDate: report.CutoffDate,
		Rows:       rows,
		Totals: ReportTotalsResponse{
			PriorTotal:    totals.PriorTotal,
			InTotal:       totals.InTotal,
			OutTotal:      totals.OutTotal,
			EndingGood:    totals.EndingGood,
			EndingDamaged: totals.EndingDmg,
			EndingTotal:   totals.EndingTotal,
		},
		Officials: report.Officials,
	}
}
