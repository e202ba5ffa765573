package services

import (
	"context"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// ReportingService defines operations for generating stock opname reports
type ReportingService interface {
	// ExtractReport returns the latest non-empty snapshot per medicine up to the end of cutoffDate.
	ExtractReport(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]domain.ReportRow, error)

	// StockReport returns the extracted rows together with the partition's officials.
	StockReport(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) (*domain.StockReport, error)

	// ExportXLSX renders the stock report as a spreadsheet.
	ExportXLSX(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]byte, error)

	// RenderPDF renders the printable stock report.
	RenderPDF(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]byte, error)
}

// ReportSpreadsheetWriter turns a report into a spreadsheet document.
type ReportSpreadsheetWriter interface {
	WriteStockReport(report *domain.StockReport) ([]byte, error)
}

// ReportDocumentRenderer turns a report into a printable document.
type ReportDocumentRenderer interface {
	RenderStockReport(ctx context.Context, report *domain.StockReport) ([]byte, error)
}
