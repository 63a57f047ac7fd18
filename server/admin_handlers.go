package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trafficdash/normalization"
	apperrors "trafficdash/server/errors"
)

// handleViolationsDeleteAll wipes the violation store.
// @Summary Delete all violation records
// @Tags violations
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/violations [delete]
func (s *Server) handleViolationsDeleteAll(c *gin.Context) {
	deleted, err := s.db.DeleteAll()
	if err != nil {
		sendError(c, apperrors.NewInternalError("failed to delete records", err))
		return
	}
	SendJSONResponse(c, http.StatusOK, gin.H{"deleted": deleted})
}

// handleViolationsDeleteRange deletes records inside an inclusive date range.
// @Summary Delete violation records by date range
// @Tags violations
// @Produce json
// @Param start query string true "First day (YYYY-MM-DD), inclusive"
// @Param end query string true "Last day (YYYY-MM-DD), inclusive"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Malformed or inverted range"
// @Router /api/violations/range [delete]
func (s *Server) handleViolationsDeleteRange(c *gin.Context) {
	startRaw, endRaw := c.Query("start"), c.Query("end")
	if startRaw == "" || endRaw == "" {
		sendError(c, apperrors.NewValidationError("start and end are required", nil))
		return
	}

	start, err := normalization.ParseDate(startRaw)
	if err != nil {
		sendError(c, apperrors.NewValidationError("invalid start date: "+startRaw, err))
		return
	}
	end, err := normalization.ParseDate(endRaw)
	if err != nil {
		sendError(c, apperrors.NewValidationError("invalid end date: "+endRaw, err))
		return
	}
	if end.Before(start) {
		sendError(c, apperrors.NewValidationError("end date precedes start date", nil))
		return
	}

	deleted, err := s.db.DeleteRange(start, end)
	if err != nil {
		sendError(c, apperrors.NewInternalError("failed to delete records", err))
		return
	}
	SendJSONResponse(c, http.StatusOK, gin.H{
		"deleted": deleted,
		"start":   normalization.FormatDate(start),
		"end":     normalization.FormatDate(end),
	})
}
