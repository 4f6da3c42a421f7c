package api

import (
	"net/http"

	"studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StudioHandler struct {
	queries queries.StudioQueries
}

func NewStudioHandler(qrys queries.StudioQueries) *StudioHandler {
	return &StudioHandler{queries: qrys}
}

func (h *StudioHandler) List(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		httperr.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, response.ToStudioListResponse(views))
}
