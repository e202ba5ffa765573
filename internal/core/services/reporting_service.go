package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/utils/opname"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	settingsRepo  portsrepo.SettingsReader
	spreadsheet   portssvc.ReportSpreadsheetWriter
	document      portssvc.ReportDocumentRenderer
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportOfficials makes StockReport carry the partition's signatories.
func WithReportOfficials(repo portsrepo.SettingsReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.settingsRepo = repo
	}
}

// WithSpreadsheetWriter enables ExportXLSX.
func WithSpreadsheetWriter(w portssvc.ReportSpreadsheetWriter) ReportingServiceOption {
	return func(s *reportingService) {
		s.spreadsheet = w
	}
}

// WithDocumentRenderer enables RenderPDF.
func WithDocumentRenderer(r portssvc.ReportDocumentRenderer) ReportingServiceOption {
	return func(s *reportingService) {
		s.document = r
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// ExtractReport returns the numbered report rows visible to the actor.
func (s *reportingService) ExtractReport(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]domain.ReportRow, error) {
	scope, err := domain.ScopeFor(actor, domain.ViewOwn)
	if err != nil {
		return nil, err
	}
	if cutoffDate.IsZero() {
		return nil, apperrors.NewValidationError("cutoffDate", "is required")
	}

	entries, err := s.reportingRepo.FindEntriesUpTo(ctx, scope, opname.EndOfDay(cutoffDate))
	if err != nil {
		s.LogError(ctx, err, "Failed to load report entries", slog.Time("cutoff", cutoffDate))
		return nil, fmt.Errorf("failed to extract report: %w", err)
	}
	rows := opname.BuildReportRows(entries, cutoffDate)
	s.LogDebug(ctx, "Report extracted", slog.Int("rows", len(rows)))
	return rows, nil
}

// StockReport extracts the rows and attaches the letterhead.
func (s *reportingService) StockReport(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) (*domain.StockReport, error) {
	rows, err := s.ExtractReport(ctx, cutoffDate, actor)
	if err != nil {
		return nil, err
	}
	partition := domain.PartitionKeyFor(actor)
	report := &domain.StockReport{
		CutoffDate: cutoffDate.Format(opname.ReportDateLayout),
		Rows:       rows,
		Officials:  domain.OfficialsSettings{PartitionKey: partition},
	}
	if s.settingsRepo == nil {
		return report, nil
	}
	officials, err := s.settingsRepo.FindOfficials(ctx, partition)
	switch {
	case err == nil:
		report.Officials = *officials
	case isNotFound(err):
	default:
		s.LogError(ctx, err, "Failed to load officials for report", slog.String("partition", partition))
		return nil, fmt.Errorf("failed to load officials: %w", err)
	}
	return report, nil
}

// ExportXLSX renders the stock report as a workbook.
func (s *reportingService) ExportXLSX(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]byte, error) {
	if s.spreadsheet == nil {
		return nil, fmt.Errorf("spreadsheet export is not configured: %w", apperrors.ErrStoreUnavailable)
	}
	report, err := s.StockReport(ctx, cutoffDate, actor)
	if err != nil {
		return nil, err
	}
	out, err := s.spreadsheet.WriteStockReport(report)
	if err != nil {
		s.LogError(ctx, err, "Failed to write report workbook")
		return nil, fmt.Errorf("failed to export report: %w", err)
	}
	return out, nil
}

// RenderPDF renders the printable stock report.
func (s *reportingService) RenderPDF(ctx context.Context, cutoffDate time.Time, actor *domain.ActingUser) ([]byte, error) {
	if s.document == nil {
		return nil, fmt.Errorf("pdf export is not configured: %w", apperrors.ErrStoreUnavailable)
	}
	report, err := s.StockReport(ctx, cutoffDate, actor)
	if err != nil {
		return nil, err
	}
	out, err := s.document.RenderStockReport(ctx, report)
	if err != nil {
		s.LogError(ctx, err, "Failed to render report document")
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
