package request

import "github.com/google/uuid"

type CreateBookingRequest struct {
	StudioID      uuid.UUID `json:"studio_id" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	StartTime     string    `json:"start_time" binding:"required"`
	EndTime       string    `json:"end_time" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required,email"`
	CustomerPhone string    `json:"customer_phone"`
	Note          *string   `json:"note"`
	// SkipValidation bypasses the conflict scan. Admin only; the use case
	// rejects it for everyone else.
	SkipValidation bool `json:"skip_validation"`
}

type UpdateBookingRequest struct {
	StudioID       uuid.UUID `json:"studio_id" binding:"required"`
	Date           string    `json:"date" binding:"required"`
	StartTime      string    `json:"start_time" binding:"required"`
	EndTime        string    `json:"end_time" binding:"required"`
	SkipValidation bool      `json:"skip_validation"`
}

// ListBookingsQuery supports two lookups: a studio day view (studio_id +
// date) or a customer history view (email). Exactly one must be supplied.
type ListBookingsQuery struct {
	StudioID string `form:"studio_id" binding:"omitempty,uuid"`
	Date     string `form:"date"`
	Email    string `form:"email" binding:"omitempty,email"`
}
