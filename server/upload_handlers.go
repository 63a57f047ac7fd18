package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trafficdash/normalization"
	apperrors "trafficdash/server/errors"
)

// UploadResponse reports the outcome of a violation file upload.
type UploadResponse struct {
	Filename  string `json:"filename"`
	Total     int    `json:"total"`
	Inserted  int    `json:"inserted"`
	Duplicate int    `json:"duplicate"`
}

// handleViolationsUpload ingests one violation export file.
// @Summary Upload a violation export file
// @Description Parses an Excel or CSV violation export and appends new records. Re-uploading the same file is a no-op.
// @Tags violations
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Violation export (.xlsx, .xls, .csv)"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "Missing file or schema mismatch"
// @Router /api/violations/upload [post]
func (s *Server) handleViolationsUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, apperrors.NewValidationError("file field is required", err))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		sendError(c, apperrors.NewInternalError("failed to open uploaded file", err))
		return
	}
	defer f.Close()

	result, err := s.ingest.IngestViolations(f, fileHeader.Filename)
	if err != nil {
		sendError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, UploadResponse{
		Filename:  fileHeader.Filename,
		Total:     result.Total,
		Inserted:  result.Inserted,
		Duplicate: result.Duplicate,
	})
}

// handleInventoryUpload stages a device inventory file for comparison.
// @Summary Upload a device inventory file
// @Description Replaces the staged inventory for the given source system (tcs or tems).
// @Tags comparison
// @Accept multipart/form-data
// @Produce json
// @Param source path string true "Source system" Enums(tcs, tems)
// @Param file formData file true "Inventory workbook (.xlsx)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/inventory/upload/{source} [post]
func (s *Server) handleInventoryUpload(c *gin.Context) {
	source := normalization.InventorySource(c.Param("source"))
	if source != normalization.SourceTCS && source != normalization.SourceTEMS {
		sendError(c, apperrors.NewValidationError("source must be tcs or tems", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		sendError(c, apperrors.NewValidationError("file field is required", err))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		sendError(c, apperrors.NewInternalError("failed to open uploaded file", err))
		return
	}
	defer f.Close()

	count, err := s.ingest.IngestInventory(f, source, fileHeader.Filename)
	if err != nil {
		sendError(c, err)
		return
	}

	SendJSONResponse(c, http.StatusOK, gin.H{
		"source":  source,
		"staged":  count,
		"message": "inventory replaced",
	})
}
