package api

import (
	"errors"
	"net/http"

	"studio-booking/internal/handler/dto/request"
	"studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlockedWindowHandler struct {
	commands commands.BlockedWindowCommands
	queries  queries.BlockedWindowQueries
}

func NewBlockedWindowHandler(cmds commands.BlockedWindowCommands, qrys queries.BlockedWindowQueries) *BlockedWindowHandler {
	return &BlockedWindowHandler{commands: cmds, queries: qrys}
}

func (h *BlockedWindowHandler) Create(c *gin.Context) {
	var req request.CreateBlockedWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "invalid request body")
		return
	}

	id, err := h.commands.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidInterval):
			httperr.BadRequest(c, httperr.CodeInvalidInterval, "interval is malformed")
		case errors.Is(err, commands.ErrStudioNotFound):
			httperr.NotFound(c, "studio not found")
		default:
			httperr.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, response.CreatedResponse{ID: id})
}

func (h *BlockedWindowHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "blocked window id must be a UUID")
		return
	}

	if err := h.commands.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrBlockedWindowNotFound) {
			httperr.NotFound(c, "blocked window not found")
			return
		}
		httperr.Internal(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BlockedWindowHandler) List(c *gin.Context) {
	var q request.ListBlockedWindowsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "studio_id and date are required")
		return
	}

	studioID, err := uuid.Parse(q.StudioID)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "studio_id must be a UUID")
		return
	}

	views, err := h.queries.ListForDay(c.Request.Context(), studioID, q.Date)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidDate) {
			httperr.BadRequest(c, httperr.CodeInvalidInterval, "date must be formatted as YYYY-MM-DD")
			return
		}
		httperr.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ToBlockedWindowListResponse(views))
}
