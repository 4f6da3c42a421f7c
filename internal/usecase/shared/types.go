package shared

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads. The query layer has its own
// richer views; these exist for in-transaction validation.

type BookingSnapshot struct {
	ID            uuid.UUID
	StudioID      uuid.UUID
	Date          booking.Date
	StartMin      int
	EndMin        int
	Status        booking.Status
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type BlockedWindowSnapshot struct {
	ID       uuid.UUID
	StudioID uuid.UUID
	Date     booking.Date
	StartMin int
	EndMin   int
	Reason   *string
}

type StudioSnapshot struct {
	ID           uuid.UUID
	Name         string
	CapacityTier string
	OpenMinutes  *int
	CloseMinutes *int
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	Endpoint        string
	RequestHash     string
	Status          string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type BlockedWindowFields struct {
	StudioID uuid.UUID
	Date     booking.Date
	StartMin int
	EndMin   int
	Reason   *string
}

// SettingsReads loads the current booking settings. Implementations must
// read fresh state on every call; settings are never cached in-process.
type SettingsReads interface {
	Get(ctx context.Context) (booking.Settings, error)
}
