package response

import (
	"time"

	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	StudioID      uuid.UUID `json:"studio_id"`
	StudioName    string    `json:"studio_name"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToBookingResponse(v *queries.BookingView) BookingResponse {
	return BookingResponse{
		ID:            v.ID,
		StudioID:      v.StudioID,
		StudioName:    v.StudioName,
		Date:          v.Date,
		StartTime:     v.StartTime,
		EndTime:       v.EndTime,
		Status:        v.Status,
		CustomerName:  v.CustomerName,
		CustomerEmail: v.CustomerEmail,
		CustomerPhone: v.CustomerPhone,
		Note:          v.Note,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func ToBookingListResponse(views []*queries.BookingView) []BookingResponse {
	out := make([]BookingResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToBookingResponse(v))
	}
	return out
}
