package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trafficdash/server/errors"
	"trafficdash/server/services"
)

// handleExport downloads the current selection as CSV or Excel.
// @Summary Export the current selection
// @Description Streams the filtered records as a downloadable file. CSV carries a UTF-8 BOM for spreadsheet compatibility.
// @Tags export
// @Produce octet-stream
// @Param format query string false "Export format" Enums(csv, excel) default(csv)
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Unknown format"
// @Router /api/export [get]
func (s *Server) handleExport(c *gin.Context) {
	session := s.sessions.Get(sessionID(c))

	format := services.ExportFormat(c.DefaultQuery("format", string(services.FormatCSV)))

	records, err := s.dashboard.SelectedRecords(session.Filters)
	if err != nil {
		sendError(c, err)
		return
	}

	// An empty selection exports a header-only file, not an error.
	data, contentType, err := s.export.Export(records, format)
	if err != nil {
		sendError(c, apperrors.NewValidationError(err.Error(), err))
		return
	}

	ext := "csv"
	if format == services.FormatExcel {
		ext = "xlsx"
	}
	filename := fmt.Sprintf("violations_%s.%s", time.Now().Format("20060102_150405"), ext)

	// Keep a server-side copy; failure only logs, the download proceeds.
	if s.cfg.ExportDir != "" {
		if err := os.MkdirAll(s.cfg.ExportDir, 0o755); err == nil {
			path := filepath.Join(s.cfg.ExportDir, filename)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				slog.Warn("failed to persist export copy", "path", path, "error", err)
			}
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
