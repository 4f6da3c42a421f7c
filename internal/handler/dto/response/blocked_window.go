package response

import (
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BlockedWindowResponse struct {
	ID        uuid.UUID `json:"id"`
	StudioID  uuid.UUID `json:"studio_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Reason    *string   `json:"reason,omitempty"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func ToBlockedWindowListResponse(views []*queries.BlockedWindowView) []BlockedWindowResponse {
	out := make([]BlockedWindowResponse, 0, len(views))
	for _, v := range views {
		out = append(out, BlockedWindowResponse{
			ID:        v.ID,
			StudioID:  v.StudioID,
			Date:      v.Date,
			StartTime: v.StartTime,
			EndTime:   v.EndTime,
			Reason:    v.Reason,
		})
	}
	return out
}
