package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "trafficdash/server/errors"
)

// handleComparisonReport reconciles the two staged inventories.
// @Summary Inventory comparison report
// @Description Summaries per source, the outer join of active devices and every field-level difference.
// @Tags comparison
// @Produce json
// @Success 200 {object} comparison.Report
// @Failure 400 {object} ErrorResponse "One or both inventories not staged"
// @Router /api/comparison/report [get]
func (s *Server) handleComparisonReport(c *gin.Context) {
	report, err := s.comparison.Compare()
	if err != nil {
		sendError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, report)
}

// handleComparisonDifferences narrows the difference list to one field.
// @Summary Differences for one compared field
// @Tags comparison
// @Produce json
// @Param field query string true "Canonical field name, e.g. vendor"
// @Success 200 {array} comparison.RowDiff
// @Failure 400 {object} ErrorResponse "Unknown field or inventories not staged"
// @Router /api/comparison/differences [get]
func (s *Server) handleComparisonDifferences(c *gin.Context) {
	field := c.Query("field")
	if field == "" {
		sendError(c, apperrors.NewValidationError("field query parameter is required", nil))
		return
	}

	diffs, err := s.comparison.DifferencesByField(field)
	if err != nil {
		sendError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, diffs)
}
