package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "trafficdash/server/errors"
)

// NotifyRequest names the summary mail recipient.
type NotifyRequest struct {
	To string `json:"to"`
}

// handleNotifySummary mails a plain-text summary of the current selection.
// @Summary Send summary mail
// @Description Formats the dashboard overview and anomaly warnings as plain text and mails them to the given recipient.
// @Tags notify
// @Accept json
// @Produce json
// @Param request body NotifyRequest true "Recipient"
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "No recipient or relay not configured"
// @Failure 502 {object} ErrorResponse "Relay delivery failed"
// @Router /api/notify/summary [post]
func (s *Server) handleNotifySummary(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, apperrors.NewValidationError("malformed request body", err))
		return
	}

	session := s.sessions.Get(sessionID(c))

	overview, err := s.dashboard.GetOverview(session.Filters, nil)
	if err != nil {
		sendError(c, err)
		return
	}
	stats, err := s.dashboard.GetDeviceAnomalies(session.Filters, false)
	if err != nil {
		sendError(c, err)
		return
	}

	if err := s.mail.SendSummary(req.To, overview, stats); err != nil {
		sendError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{"to": req.To, "message": "summary sent"})
}
