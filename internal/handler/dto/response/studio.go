package response

import (
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type StudioResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CapacityTier string    `json:"capacity_tier"`
	OpenTime     string    `json:"open_time"`
	CloseTime    string    `json:"close_time"`
}

func ToStudioListResponse(views []*queries.StudioView) []StudioResponse {
	out := make([]StudioResponse, 0, len(views))
	for _, v := range views {
		out = append(out, StudioResponse{
			ID:           v.ID,
			Name:         v.Name,
			CapacityTier: v.CapacityTier,
			OpenTime:     v.OpenTime,
			CloseTime:    v.CloseTime,
		})
	}
	return out
}
