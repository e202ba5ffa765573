package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests on the caller's stock opname ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers all ledger entry routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	registerValidators()
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/ledger-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/carry-forward", h.carryForward)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.updateEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Submit a stock opname entry
// @Description Validates the candidate, recomputes every total and stores a new row in the caller's ledger.
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.SubmitLedgerEntryRequest true "Ledger entry"
// @Success 201 {object} dto.APIResponse{data=dto.LedgerEntryResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 401 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse "Another write on the same lot is in progress"
// @Failure 503 {object} dto.APIResponse
// @Security BearerAuth
// @Router /ledger-entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	h.submit(c, "", http.StatusCreated)
}

// updateEntry godoc
// @Summary Overwrite a stock opname entry
// @Tags ledger
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.SubmitLedgerEntryRequest true "Ledger entry"
// @Success 200 {object} dto.APIResponse{data=dto.LedgerEntryResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Failure 409 {object} dto.APIResponse
// @Security BearerAuth
// @Router /ledger-entries/{id} [put]
func (h *ledgerHandler) updateEntry(c *gin.Context) {
	h.submit(c, c.Param("id"), http.StatusOK)
}

func (h *ledgerHandler) submit(c *gin.Context, existingID string, status int) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.SubmitLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerService.SubmitEntry(c.Request.Context(), req, actor, existingID)
	if err != nil {
		respondError(c, err, "save ledger entry")
		return
	}

	logger.Info("Ledger entry submitted", slog.String("entry_id", entry.EntryID))
	c.JSON(status, dto.OK(dto.ToLedgerEntryResponse(entry)))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists the caller's entries newest first with keyset pagination.
// @Tags ledger
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Param medicineName query string false "Medicine name filter"
// @Success 200 {object} dto.APIResponse{data=dto.ListLedgerEntriesResponse}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /ledger-entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.ledgerService.ListEntries(c.Request.Context(), params, actor)
	if err != nil {
		respondError(c, err, "list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}

// getEntry godoc
// @Summary Get a ledger entry
// @Tags ledger
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.APIResponse{data=dto.LedgerEntryResponse}
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /ledger-entries/{id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	entry, err := h.ledgerService.GetEntry(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err, "get ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToLedgerEntryResponse(entry)))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Removes one row. Later entries of the lot keep their stored prior balances.
// @Tags ledger
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Security BearerAuth
// @Router /ledger-entries/{id} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	entryID := c.Param("id")
	if err := h.ledgerService.DeleteEntry(c.Request.Context(), entryID, actor); err != nil {
		respondError(c, err, "delete ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{"id": entryID}))
}

// carryForward godoc
// @Summary Resolve the carry-forward balance of a lot
// @Description Returns the ending balance of the latest entry with the same medicine name and expiry date, or zeros.
// @Tags ledger
// @Produce json
// @Param medicineName query string true "Medicine name"
// @Param expiryDate query string false "Expiry date (YYYY-MM-DD or RFC3339)"
// @Param excludeId query string false "Entry being edited"
// @Success 200 {object} dto.APIResponse{data=dto.CarryForwardResponse}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /ledger-entries/carry-forward [get]
func (h *ledgerHandler) carryForward(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var params dto.CarryForwardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	var expiry *time.Time
	if params.ExpiryDate != "" {
		t, err := dto.ParseDateInput(params.ExpiryDate)
		if err != nil {
			respondBindError(c, err)
			return
		}
		expiry = &t
	}

	cf, err := h.ledgerService.ResolveCarryForward(c.Request.Context(), params.MedicineName, expiry, actor, params.ExcludeID)
	if err != nil {
		respondError(c, err, "resolve carry-forward")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.CarryForwardResponse{
		EndingGood:    cf.EndingGood,
		EndingDamaged: cf.EndingDamaged,
	}))
}
