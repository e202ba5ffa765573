package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

// RegisterSettingsRoutes registers the officials settings routes.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc) {
	h := &settingsHandler{settingsService: settingsService}

	rg.GET("/settings/officials", h.getOfficials)
	rg.PUT("/settings/officials", h.updateOfficials)
}

// getOfficials godoc
// @Summary Report signatories
// @Description Officials printed on the caller's reports. Empty when never set.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=domain.OfficialsSettings}
// @Security BearerAuth
// @Router /settings/officials [get]
func (h *settingsHandler) getOfficials(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetOfficialsSettings(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "get officials settings")
		return
	}
	c.JSON(http.StatusOK, dto.OK(settings))
}

// updateOfficials godoc
// @Summary Replace report signatories
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateOfficialsRequest true "Officials"
// @Success 200 {object} dto.APIResponse{data=domain.OfficialsSettings}
// @Failure 400 {object} dto.APIResponse
// @Security BearerAuth
// @Router /settings/officials [put]
func (h *settingsHandler) updateOfficials(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var req dto.UpdateOfficialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := h.settingsService.UpdateOfficialsSettings(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "update officials settings")
		return
	}
	c.JSON(http.StatusOK, dto.OK(settings))
}
