package api

import (
	"errors"
	"net/http"

	"studio-booking/internal/handler/dto/request"
	"studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qrys queries.BookingQueries) *BookingHandler {
	return &BookingHandler{commands: cmds, queries: qrys}
}

// Create books a slot. The Idempotency-Key header is mandatory so network
// retries never double-book; a replayed key returns the original booking
// with 200 instead of 201.
func (h *BookingHandler) Create(c *gin.Context) {
	key, err := uuid.Parse(c.GetHeader(idempotencyKeyHeader))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Idempotency-Key header must be a UUID")
		return
	}

	var req request.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid request body")
		return
	}

	role := middleware.RoleFrom(c)
	result, err := h.commands.CreateBooking(c.Request.Context(), req, role, key)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, response.ToBookingResponse(result.Booking))
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "booking id must be a UUID")
		return
	}

	var req request.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid request body")
		return
	}

	role := middleware.RoleFrom(c)
	view, err := h.commands.UpdateBooking(c.Request.Context(), id, req, role)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ToBookingResponse(view))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "booking id must be a UUID")
		return
	}

	if err := h.commands.CancelBooking(c.Request.Context(), id); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "booking id must be a UUID")
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrBookingNotFound) {
			httperr.NotFound(c, "booking not found")
			return
		}
		httperr.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ToBookingResponse(view))
}

func (h *BookingHandler) List(c *gin.Context) {
	var q request.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid query parameters")
		return
	}

	if q.Email != "" {
		views, err := h.queries.ListByCustomerEmail(c.Request.Context(), q.Email)
		if err != nil {
			httperr.Internal(c, err)
			return
		}
		c.JSON(http.StatusOK, response.ToBookingListResponse(views))
		return
	}

	if q.StudioID == "" || q.Date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "either email or studio_id and date are required")
		return
	}

	studioID, err := uuid.Parse(q.StudioID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "studio_id must be a UUID")
		return
	}

	views, err := h.queries.ListByStudioDate(c.Request.Context(), studioID, q.Date)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidDate) {
			httperr.BadRequest(c, httperr.CodeInvalidInterval, "date must be formatted as YYYY-MM-DD")
			return
		}
		httperr.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ToBookingListResponse(views))
}

func (h *BookingHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidInterval):
		httperr.BadRequest(c, httperr.CodeInvalidInterval, "interval is malformed, in the past, or violates duration bounds")
	case errors.Is(err, commands.ErrOutOfWindow):
		httperr.BadRequest(c, httperr.CodeOutOfWindow, "date is outside the advance booking window")
	case errors.Is(err, commands.ErrStudioNotFound):
		httperr.NotFound(c, "studio not found")
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.NotFound(c, "booking not found")
	case errors.Is(err, commands.ErrSlotConflict):
		httperr.Conflict(c, httperr.CodeSlotConflict, "the requested interval overlaps an existing booking or blocked window")
	case errors.Is(err, commands.ErrNotCancellable):
		httperr.Conflict(c, httperr.CodeNotModifiable, "only confirmed bookings can be changed")
	case errors.Is(err, commands.ErrForbiddenOverride):
		httperr.Forbidden(c, "skip_validation requires the admin role")
	case errors.Is(err, commands.ErrDuplicateRequest):
		httperr.Conflict(c, httperr.CodeDuplicateRequest, "idempotency key was already used with a different request")
	case errors.Is(err, commands.ErrIdempotencyInProgress):
		httperr.Conflict(c, httperr.CodeRequestInProgress, "an identical request is still being processed")
	default:
		httperr.Internal(c, err)
	}
}
