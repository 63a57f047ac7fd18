package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "trafficdash/server/errors"
)

// CameraListResponse carries one camera registry lookup.
type CameraListResponse struct {
	Province   string         `json:"province"`
	District   string         `json:"district"`
	DeviceCode string         `json:"device_code,omitempty"`
	Count      int            `json:"count"`
	Cameras    []CameraDevice `json:"cameras"`
}

// handleCameras queries the public camera registry and caches the
// result on the session for the map view.
// @Summary Look up enforcement cameras
// @Description Fetches speed cameras for a province and district from the public registry. Only fixed and section speed cameras are returned.
// @Tags cameras
// @Produce json
// @Param province query string true "Province name, aliases accepted"
// @Param district query string false "District name, narrows the lookup when present"
// @Param device_code query string false "Restrict to one equipment code prefix"
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} CameraListResponse
// @Failure 400 {object} ErrorResponse "Missing province"
// @Failure 502 {object} ErrorResponse "Registry unavailable"
// @Router /api/cameras [get]
func (s *Server) handleCameras(c *gin.Context) {
	province := c.Query("province")
	if province == "" {
		sendError(c, apperrors.NewValidationError("province is required", nil))
		return
	}
	district := c.Query("district")
	deviceCode := c.Query("device_code")

	cameras, err := s.cameras.FetchCameras(c.Request.Context(), province, district, deviceCode)
	if err != nil {
		sendError(c, apperrors.NewExternalAPIError("camera registry lookup failed", err))
		return
	}
	if cameras == nil {
		cameras = []CameraDevice{}
	}

	s.sessions.SetCameras(sessionID(c), cameras)

	SendJSONResponse(c, http.StatusOK, CameraListResponse{
		Province:   province,
		District:   district,
		DeviceCode: deviceCode,
		Count:      len(cameras),
		Cameras:    cameras,
	})
}
