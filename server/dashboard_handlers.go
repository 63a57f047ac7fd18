package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trafficdash/analytics"
)

// handleOverview computes every dashboard aggregate for the session's
// current selection.
// @Summary Dashboard overview
// @Description Returns totals, grouped counts, daily series, hour histogram and per-device counts for the current selection.
// @Tags dashboard
// @Produce json
// @Param group_by query string false "Comma separated grouping dimensions" default(violation_type)
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} services.Overview
// @Failure 400 {object} ErrorResponse "Unknown grouping dimension"
// @Router /api/dashboard/overview [get]
func (s *Server) handleOverview(c *gin.Context) {
	session := s.sessions.Get(sessionID(c))

	var dims []string
	if raw := c.Query("group_by"); raw != "" {
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dims = append(dims, d)
			}
		}
	}

	overview, err := s.dashboard.GetOverview(session.Filters, dims)
	if err != nil {
		sendError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, overview)
}

// handleAnomalies lists per-device spike statistics.
// @Summary Device anomaly statistics
// @Description Rolling per-device baselines and spike flags for the current selection.
// @Tags dashboard
// @Produce json
// @Param flagged_only query bool false "Return only devices exceeding their threshold"
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {array} analytics.DeviceStats
// @Router /api/dashboard/anomalies [get]
func (s *Server) handleAnomalies(c *gin.Context) {
	session := s.sessions.Get(sessionID(c))
	flaggedOnly := c.Query("flagged_only") == "true"

	stats, err := s.dashboard.GetDeviceAnomalies(session.Filters, flaggedOnly)
	if err != nil {
		sendError(c, err)
		return
	}
	if stats == nil {
		stats = []analytics.DeviceStats{}
	}
	SendJSONResponse(c, http.StatusOK, stats)
}

// handleDeviceDetail returns the per-day, per-type drill-down for one device.
// @Summary Device drill-down
// @Tags dashboard
// @Produce json
// @Param code path string true "Equipment code"
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {array} analytics.DateTypeCount
// @Router /api/dashboard/devices/{code} [get]
func (s *Server) handleDeviceDetail(c *gin.Context) {
	session := s.sessions.Get(sessionID(c))

	detail, err := s.dashboard.GetDeviceDetail(session.Filters, c.Param("code"))
	if err != nil {
		sendError(c, err)
		return
	}
	// A device with no records in the selection is an empty result.
	if detail == nil {
		detail = []analytics.DateTypeCount{}
	}
	SendJSONResponse(c, http.StatusOK, detail)
}

// handleFilterOptions lists the distinct values available for each filter.
// @Summary Filter options
// @Description Distinct stored values for violation type, processing status, location category and vehicle type.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/dashboard/filter-options [get]
func (s *Server) handleFilterOptions(c *gin.Context) {
	options, err := s.dashboard.FilterOptions()
	if err != nil {
		sendError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, options)
}
