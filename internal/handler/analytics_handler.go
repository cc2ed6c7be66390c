package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tnpcell/placement-office-api/internal/service"
	"github.com/tnpcell/placement-office-api/pkg/response"
)

// AnalyticsHandler serves derived placement statistics.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	metrics   *service.MetricsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, metrics *service.MetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, metrics: metrics}
}

// Summary godoc
// @Summary Placement summary statistics
// @Description Distinct companies, total hires and top package for the active ledger
// @Tags Analytics
// @Produce json
// @Param year query int false "Restrict to a placement year"
// @Success 200 {object} response.Envelope
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context(), yearQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// TopCompanies godoc
// @Summary Company leaderboard by hires
// @Tags Analytics
// @Produce json
// @Param year query int false "Restrict to a placement year"
// @Param limit query int false "Maximum companies returned (default 5)"
// @Success 200 {object} response.Envelope
// @Router /analytics/top-companies [get]
func (h *AnalyticsHandler) TopCompanies(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	companies, err := h.analytics.TopCompanies(c.Request.Context(), yearQuery(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, companies, nil)
}

// Offers godoc
// @Summary Active placements ordered by most recent visit
// @Tags Analytics
// @Produce json
// @Param year query int false "Restrict to a placement year"
// @Success 200 {object} response.Envelope
// @Router /analytics/offers [get]
func (h *AnalyticsHandler) Offers(c *gin.Context) {
	offers, err := h.analytics.Offers(c.Request.Context(), yearQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offers, nil)
}

// System godoc
// @Summary Runtime and cache counters
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	if h.metrics == nil {
		response.JSON(c, http.StatusOK, nil, nil)
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
