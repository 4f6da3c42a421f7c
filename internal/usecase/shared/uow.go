package shared

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: validation reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	BlockedWindows() BlockedWindowRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX

	// LockStudioDate serializes writers on one (studio, date) key for the
	// rest of the transaction. Non-overlapping keys commit concurrently.
	LockStudioDate(ctx context.Context, studioID uuid.UUID, date booking.Date) error
}

type CommandReads interface {
	StudioByID(ctx context.Context, id uuid.UUID) (*StudioSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// ActiveBookings returns the slot-occupying bookings for a studio day.
	ActiveBookings(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]BookingSnapshot, error)
	BlockedWindows(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]BlockedWindowSnapshot, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// UpdateSlot moves a booking to a new studio/date/interval. A true
	// bypassValidation exempts the row from the store-level overlap backstop.
	UpdateSlot(ctx context.Context, tx db.DBTX, id, studioID uuid.UUID, date booking.Date, slot booking.TimeSlot, bypassValidation bool) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
}

type BlockedWindowRepository interface {
	Create(ctx context.Context, tx db.DBTX, fields BlockedWindowFields) (uuid.UUID, error)
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type IdempotencyRepository interface {
	// TryInsert claims the key. It reports false when the key already exists,
	// in which case the caller inspects the stored record.
	TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
