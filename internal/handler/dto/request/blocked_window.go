package request

import "github.com/google/uuid"

type CreateBlockedWindowRequest struct {
	StudioID  uuid.UUID `json:"studio_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	StartTime string    `json:"start_time" binding:"required"`
	EndTime   string    `json:"end_time" binding:"required"`
	Reason    *string   `json:"reason"`
}
