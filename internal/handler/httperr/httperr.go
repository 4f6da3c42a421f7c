package httperr

import (
	"log/slog"
	"net/http"

	"studio-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes. Clients branch on Code, never on the
// human message.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidInterval   = "invalid_interval"
	CodeOutOfWindow       = "out_of_window"
	CodeSlotConflict      = "slot_conflict"
	CodeNotFound          = "not_found"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeDuplicateRequest  = "duplicate_request"
	CodeNotModifiable     = "booking_not_modifiable"
	CodeRequestInProgress = "request_in_progress"
	CodeStoreUnavailable  = "store_unavailable"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func Respond(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

func BadRequest(c *gin.Context, code, message string) {
	Respond(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, message string) {
	Respond(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Respond(c, http.StatusForbidden, CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, CodeNotFound, message)
}

func Conflict(c *gin.Context, code, message string) {
	Respond(c, http.StatusConflict, code, message)
}

// Internal logs the cause with a truncated stack and returns an opaque 503.
// Store failures are surfaced as unavailability so clients retry.
func Internal(c *gin.Context, err error) {
	slog.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 10),
	)
	Respond(c, http.StatusServiceUnavailable, CodeStoreUnavailable, "booking store is temporarily unavailable")
}
