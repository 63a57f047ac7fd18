package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "trafficdash/server/errors"
	"trafficdash/server/middleware"
)

// ErrorResponse is the JSON error envelope shared by every endpoint.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// SendJSONResponse writes a JSON payload with the given status code.
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendJSONError writes the JSON error envelope and logs the failure
// together with the request id.
func SendJSONError(c *gin.Context, statusCode int, message string) {
	slog.Error("HTTP error",
		"error", message,
		"status_code", statusCode,
		"request_id", middleware.GetRequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	c.JSON(statusCode, ErrorResponse{
		Error:   true,
		Message: message,
	})
}

// sendError maps an error to its HTTP status. Errors that are not
// AppError are reported as internal without leaking their message.
func sendError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		SendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}
	slog.Error("unclassified error", "error", err, "request_id", middleware.GetRequestID(c))
	SendJSONError(c, http.StatusInternalServerError, "internal server error")
}

// sessionID resolves the session the request belongs to.
func sessionID(c *gin.Context) string {
	if id := c.GetHeader(middleware.SessionHeader); id != "" {
		return id
	}
	return DefaultSessionID
}
