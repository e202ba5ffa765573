package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/platform/export"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers the stock opname report routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports/stock-opname")
	{
		reports.GET("", h.stockReport)
		reports.GET("/xlsx", h.exportXLSX)
		reports.GET("/pdf", h.exportPDF)
	}
}

func parseCutoff(c *gin.Context) (time.Time, bool) {
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return time.Time{}, false
	}
	if params.CutoffDate == "" {
		respondError(c, apperrors.NewValidationError("cutoffDate", "is required"), "parse cutoff date")
		return time.Time{}, false
	}
	cutoff, err := dto.ParseDateInput(params.CutoffDate)
	if err != nil {
		respondError(c, apperrors.NewValidationError("cutoffDate", err.Error()), "parse cutoff date")
		return time.Time{}, false
	}
	return cutoff, true
}

// stockReport godoc
// @Summary Stock opname report
// @Description Final snapshot of every medicine reconciled up to the end of the cutoff day.
// @Tags reports
// @Produce json
// @Param cutoffDate query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.StockReportResponse}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /reports/stock-opname [get]
func (h *reportingHandler) stockReport(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	cutoff, ok := parseCutoff(c)
	if !ok {
		return
	}
	report, err := h.reportingService.StockReport(c.Request.Context(), cutoff, actor)
	if err != nil {
		respondError(c, err, "extract report")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToStockReportResponse(report)))
}

// exportXLSX godoc
// @Summary Stock opname workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param cutoffDate query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse
// @Security BearerAuth
// @Router /reports/stock-opname/xlsx [get]
func (h *reportingHandler) exportXLSX(c *gin.Context) {
	h.export(c, "xlsx", export.XLSXContentType, h.reportingService.ExportXLSX)
}

// exportPDF godoc
// @Summary Printable stock opname report
// @Tags reports
// @Produce application/pdf
// @Param cutoffDate query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse "PDF rendering is not available"
// @Security BearerAuth
// @Router /reports/stock-opname/pdf [get]
func (h *reportingHandler) exportPDF(c *gin.Context) {
	h.export(c, "pdf", export.PDFContentType, h.reportingService.RenderPDF)
}

type reportExporter func(ctx context.Context, cutoff time.Time, actor *domain.ActingUser) ([]byte, error)

func (h *reportingHandler) export(c *gin.Context, ext, contentType string, exportFn reportExporter) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	cutoff, ok := parseCutoff(c)
	if !ok {
		return
	}
	out, err := exportFn(c.Request.Context(), cutoff, actor)
	if err != nil {
		respondError(c, err, "export report")
		return
	}
	filename := fmt.Sprintf("stock-opname-%s.%s", cutoff.Format(dto.DateLayout), ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, out)
}
