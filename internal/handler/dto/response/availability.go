package response

import (
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	StudioID           uuid.UUID      `json:"studio_id"`
	Date               string         `json:"date"`
	GranularityMinutes int            `json:"granularity_minutes"`
	Slots              []SlotResponse `json:"slots"`
}

func ToAvailabilityResponse(v *queries.AvailabilityView) AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(v.Slots))
	for _, s := range v.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: s.Available,
		})
	}
	return AvailabilityResponse{
		StudioID:           v.StudioID,
		Date:               v.Date,
		GranularityMinutes: v.GranularityMinutes,
		Slots:              slots,
	}
}
