package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trafficdash/analytics"
	"trafficdash/normalization"
	apperrors "trafficdash/server/errors"
)

// FilterPayload is the wire form of a filter selection. Dates travel as
// "YYYY-MM-DD" strings; empty fields leave that dimension unrestricted.
type FilterPayload struct {
	Start              string   `json:"start"`
	End                string   `json:"end"`
	ViolationTypes     []string `json:"violation_types"`
	ProcessingStatuses []string `json:"processing_statuses"`
	LocationCategories []string `json:"location_categories"`
}

func (p FilterPayload) toFilters() (analytics.Filters, error) {
	var filters analytics.Filters
	if p.Start != "" {
		t, err := normalization.ParseDate(p.Start)
		if err != nil {
			return filters, apperrors.NewValidationError("invalid start date: "+p.Start, err)
		}
		filters.Start = &t
	}
	if p.End != "" {
		t, err := normalization.ParseDate(p.End)
		if err != nil {
			return filters, apperrors.NewValidationError("invalid end date: "+p.End, err)
		}
		filters.End = &t
	}
	if filters.Start != nil && filters.End != nil && filters.End.Before(*filters.Start) {
		return filters, apperrors.NewValidationError("end date precedes start date", nil)
	}
	filters.ViolationTypes = p.ViolationTypes
	filters.ProcessingStatuses = p.ProcessingStatuses
	filters.LocationCategories = p.LocationCategories
	return filters, nil
}

func payloadFromFilters(filters analytics.Filters) FilterPayload {
	p := FilterPayload{
		ViolationTypes:     filters.ViolationTypes,
		ProcessingStatuses: filters.ProcessingStatuses,
		LocationCategories: filters.LocationCategories,
	}
	if filters.Start != nil {
		p.Start = normalization.FormatDate(*filters.Start)
	}
	if filters.End != nil {
		p.End = normalization.FormatDate(*filters.End)
	}
	return p
}

// handleFiltersGet returns the session's current filter selection.
// @Summary Current filter selection
// @Tags session
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} FilterPayload
// @Router /api/session/filters [get]
func (s *Server) handleFiltersGet(c *gin.Context) {
	session := s.sessions.Get(sessionID(c))
	SendJSONResponse(c, http.StatusOK, payloadFromFilters(session.Filters))
}

// handleFiltersSet replaces the session's filter selection.
// @Summary Set filter selection
// @Description Replaces the session's filters. Dates are inclusive calendar days.
// @Tags session
// @Accept json
// @Produce json
// @Param filters body FilterPayload true "New selection"
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} FilterPayload
// @Failure 400 {object} ErrorResponse "Malformed dates or inverted range"
// @Router /api/session/filters [put]
func (s *Server) handleFiltersSet(c *gin.Context) {
	var payload FilterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		sendError(c, apperrors.NewValidationError("malformed filter payload", err))
		return
	}

	filters, err := payload.toFilters()
	if err != nil {
		sendError(c, err)
		return
	}

	session := s.sessions.SetFilters(sessionID(c), filters)
	SendJSONResponse(c, http.StatusOK, payloadFromFilters(session.Filters))
}

// handleSessionReset clears the session's filters and cached cameras.
// @Summary Reset session
// @Tags session
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} map[string]interface{}
// @Router /api/session/reset [post]
func (s *Server) handleSessionReset(c *gin.Context) {
	id := sessionID(c)
	s.sessions.Reset(id)
	SendJSONResponse(c, http.StatusOK, gin.H{"session": id, "message": "session reset"})
}
