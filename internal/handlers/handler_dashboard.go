package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/SscSPs/stock_opname_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// defaultHeartbeat keeps idle streams alive through proxies.
const defaultHeartbeat = 25 * time.Second

type dashboardHandler struct {
	statsService portssvc.StatsSvc
	heartbeat    time.Duration
}

// RegisterDashboardRoutes registers dashboard and monitoring routes.
func RegisterDashboardRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvc) {
	registerDashboardRoutes(rg, statsService, defaultHeartbeat)
}

func registerDashboardRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvc, heartbeat time.Duration) {
	h := &dashboardHandler{statsService: statsService, heartbeat: heartbeat}

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/stats", h.dashboardStats)
		dashboard.GET("/stream", h.dashboardStream)
	}

	monitoring := rg.Group("/monitoring", middleware.RequireRole(domain.UserRoleAdmin))
	{
		monitoring.GET("/stats", h.monitoringStats)
		monitoring.GET("/stream", h.monitoringStream)
	}
}

// dashboardStats godoc
// @Summary Dashboard figures
// @Description Latest snapshot figures of the caller's ledger.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse}
// @Failure 401 {object} dto.APIResponse
// @Failure 503 {object} dto.APIResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) dashboardStats(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	stats, err := h.statsService.ComputeDashboardStats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToDashboardStatsResponse(stats)))
}

// monitoringStats godoc
// @Summary Monitoring figures
// @Description Per unit snapshot over every unit ledger, admins only.
// @Tags dashboard
// @Produce json
// @Param unitId query string false "Restrict to one unit"
// @Success 200 {object} dto.APIResponse{data=dto.MonitoringResponse}
// @Failure 403 {object} dto.APIResponse
// @Security BearerAuth
// @Router /monitoring/stats [get]
func (h *dashboardHandler) monitoringStats(c *gin.Context) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	var params dto.MonitoringParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	stats, err := h.statsService.ComputeMonitoringStats(c.Request.Context(), params.UnitID, actor)
	if err != nil {
		respondError(c, err, "compute monitoring stats")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToMonitoringResponse(stats)))
}

// dashboardStream godoc
// @Summary Live dashboard figures
// @Description Server-sent events; a "stats" event after every change to the caller's ledger.
// @Tags dashboard
// @Produce text/event-stream
// @Param access_token query string false "JWT, for clients that cannot set headers"
// @Success 200 {object} dto.DashboardStatsResponse
// @Security BearerAuth
// @Router /dashboard/stream [get]
func (h *dashboardHandler) dashboardStream(c *gin.Context) {
	h.stream(c, domain.ViewOwn, "", func(s *domain.DashboardStats) any {
		return dto.ToDashboardStatsResponse(s)
	})
}

// monitoringStream godoc
// @Summary Live monitoring figures
// @Tags dashboard
// @Produce text/event-stream
// @Param unitId query string false "Restrict to one unit"
// @Success 200 {object} dto.MonitoringResponse
// @Security BearerAuth
// @Router /monitoring/stream [get]
func (h *dashboardHandler) monitoringStream(c *gin.Context) {
	h.stream(c, domain.ViewMonitoring, c.Query("unitId"), func(s *domain.DashboardStats) any {
		return dto.ToMonitoringResponse(s)
	})
}

func (h *dashboardHandler) stream(c *gin.Context, view domain.LedgerView, unitID string, render func(*domain.DashboardStats) any) {
	actor, ok := actingUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	updates, err := h.statsService.WatchStats(ctx, view, unitID, actor)
	if err != nil {
		respondError(c, err, "watch stats")
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	logger.Info("Stats stream opened", slog.Int("view", int(view)))
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case stats, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("stats", render(stats))
			return true
		case t := <-heartbeat.C:
			c.SSEvent("ping", t.UTC().Format(time.RFC3339))
			return true
		}
	})
	logger.Info("Stats stream closed")
}
