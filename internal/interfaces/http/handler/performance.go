package handler

import (
	"github.com/agencyops/backend/internal/application/performance"
	"github.com/agencyops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PerformanceHandler handles dashboard and reporting HTTP requests
type PerformanceHandler struct {
	BaseHandler
	performanceService *performance.Service
}

// NewPerformanceHandler creates a new performance handler
func NewPerformanceHandler(performanceService *performance.Service) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

// RegisterRoutes registers all performance routes. History and trend are
// leadership views; the dashboard scopes itself to the requester's subtree.
func (h *PerformanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	perf := rg.Group("/performance")
	{
		perf.GET("/dashboard", h.Dashboard)
		perf.GET("/trend", middleware.LeadershipOnly(), h.Trend)
		perf.GET("/history", middleware.LeadershipOnly(), h.History)
	}
}

// Dashboard returns the per-agent rollup for the requester's subtree
func (h *PerformanceHandler) Dashboard(c *gin.Context) {
	var q performance.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	requesterID, err := getProfileID(c)
	if err != nil {
		h.Unauthorized(c, "Missing authenticated profile")
		return
	}

	result, err := h.performanceService.Dashboard(c.Request.Context(), requesterID, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Trend returns per-month issued counts and premium for one year
func (h *PerformanceHandler) Trend(c *gin.Context) {
	var q performance.TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.performanceService.Trend(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// History returns the 12-month series for one statistic with its
// year-over-year anchor
func (h *PerformanceHandler) History(c *gin.Context) {
	var q performance.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.performanceService.History(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
