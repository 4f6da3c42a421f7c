//go:build unit || e2e

package builder

import (
	"time"

	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	StudioID      uuid.UUID
	StudioName    string
	Date          string
	StartTime     string
	EndTime       string
	Status        string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		ID:            uuid.New(),
		StudioID:      uuid.New(),
		StudioName:    "Studio A",
		Date:          "2026-09-10",
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        "confirmed",
		CustomerName:  "Mia Wong",
		CustomerEmail: "mia@example.com",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		StudioID:      b.StudioID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Note:          b.Note,
	}
}

func (b *BookingBuilder) BuildUpdateRequestDTO() reqdto.UpdateBookingRequest {
	return reqdto.UpdateBookingRequest{
		StudioID:  b.StudioID,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID,
		StudioID:      b.StudioID,
		StudioName:    b.StudioName,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Note:          b.Note,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
