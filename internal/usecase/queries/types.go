package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models for the query side. Times of day are "HH:MM" strings and dates
// are "2006-01-02"; the response layer owns the JSON shape.

type BookingView struct {
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

type SlotView struct {
	StartTime string
	EndTime   string
	Available bool
}

type AvailabilityView struct {
	StudioID           uuid.UUID
	Date               string
	GranularityMinutes int
	Slots              []SlotView
}

type StudioView struct {
	ID           uuid.UUID
	Name         string
	CapacityTier string
	OpenTime     string
	CloseTime    string
}

type BlockedWindowView struct {
	ID        uuid.UUID
	StudioID  uuid.UUID
	Date      string
	StartTime string
	EndTime   string
	Reason    *string
}
