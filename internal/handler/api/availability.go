package api

import (
	"errors"
	"net/http"

	"studio-booking/internal/handler/dto/request"
	"studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Get returns the slot grid for one studio day. Staff and admin callers see
// past slots on today's date as bookable.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	var q request.GetAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "studio_id and date are required")
		return
	}

	studioID, err := uuid.Parse(q.StudioID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "studio_id must be a UUID")
		return
	}

	role := middleware.RoleFrom(c)
	view, err := h.availability.Grid(c.Request.Context(), studioID, q.Date, role.IsPrivileged())
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			httperr.BadRequest(c, httperr.CodeInvalidInterval, "date must be formatted as YYYY-MM-DD")
		case errors.Is(err, queries.ErrOutOfWindow):
			httperr.BadRequest(c, httperr.CodeOutOfWindow, "date is outside the advance booking window")
		case errors.Is(err, queries.ErrStudioNotFound):
			httperr.NotFound(c, "studio not found")
		default:
			httperr.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, response.ToAvailabilityResponse(view))
}
