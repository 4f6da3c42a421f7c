package repository

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type bookingRepositoryImpl struct{}

func NewBookingRepository() *bookingRepositoryImpl {
	return &bookingRepositoryImpl{}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, studio_id, date, start_min, end_min, status,
    customer_name, customer_email, customer_phone, note,
    validation_bypassed, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
`

// Create inserts a new booking row. The exclusion constraint on occupying
// rows is the database-level backstop behind the advisory lock; a violation
// surfaces as KindConflict. Rows flagged as validation-bypassed sit outside
// the constraint so the admin override can force-insert over an overlap.
func (r *bookingRepositoryImpl) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, createBookingSQL,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.StudioID()),
		pgconv.DateToPgtype(b.Date().Time(time.UTC)),
		int32(b.Slot().StartMinutes()),
		int32(b.Slot().EndMinutes()),
		b.Status().String(),
		b.Customer().Name(),
		b.Customer().Email(),
		b.Customer().Phone(),
		noteToPgtype(b.Note()),
		b.ValidationBypassed(),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, classifyWriteError(err))
	}
	return b.ID(), nil
}

const updateBookingSlotSQL = `
UPDATE bookings
SET studio_id = $2, date = $3, start_min = $4, end_min = $5, validation_bypassed = $6, updated_at = now()
WHERE id = $1
`

func (r *bookingRepositoryImpl) UpdateSlot(ctx context.Context, tx db.DBTX, id, studioID uuid.UUID, date booking.Date, slot booking.TimeSlot, bypassValidation bool) error {
	tag, err := tx.Exec(ctx, updateBookingSlotSQL,
		pgconv.UUIDToPgtype(id),
		pgconv.UUIDToPgtype(studioID),
		pgconv.DateToPgtype(date.Time(time.UTC)),
		int32(slot.StartMinutes()),
		int32(slot.EndMinutes()),
		bypassValidation,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking slot", err, classifyWriteError(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateBookingStatusSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1
`

func (r *bookingRepositoryImpl) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, pgconv.UUIDToPgtype(id), status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// classifyWriteError maps constraint violations onto repository kinds.
// 23P01 is exclusion_violation, 23505 is unique_violation.
func classifyWriteError(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23P01":
			return infra.KindConflict
		case "23505":
			return infra.KindDuplicateKey
		}
	}
	return infra.KindDBFailure
}
