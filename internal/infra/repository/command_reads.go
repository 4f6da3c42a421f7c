package repository

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// commandReadsImpl answers the write-path validation reads. It is bound to a
// DBTX at construction, so the same implementation serves pooled pre-checks
// and in-transaction re-checks.
type commandReadsImpl struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &commandReadsImpl{dbtx: dbtx}
}

const studioByIDSQL = `
SELECT id, name, capacity_tier, open_minutes, close_minutes
FROM studios
WHERE id = $1
`

func (r *commandReadsImpl) StudioByID(ctx context.Context, id uuid.UUID) (*shared.StudioSnapshot, error) {
	var (
		pgID         pgtype.UUID
		name         string
		capacityTier string
		openMin      pgtype.Int4
		closeMin     pgtype.Int4
	)
	err := r.dbtx.QueryRow(ctx, studioByIDSQL, pgconv.UUIDToPgtype(id)).
		Scan(&pgID, &name, &capacityTier, &openMin, &closeMin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("studio not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find studio", err)
	}

	return &shared.StudioSnapshot{
		ID:           uuid.UUID(pgID.Bytes),
		Name:         name,
		CapacityTier: capacityTier,
		OpenMinutes:  intPtrFromPgtype(openMin),
		CloseMinutes: intPtrFromPgtype(closeMin),
	}, nil
}

const bookingByIDSQL = `
SELECT id, studio_id, date, start_min, end_min, status,
       customer_name, customer_email, customer_phone, note,
       created_at, updated_at
FROM bookings
WHERE id = $1
`

func (r *commandReadsImpl) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, err := scanBookingSnapshot(r.dbtx.QueryRow(ctx, bookingByIDSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return snap, nil
}

const activeBookingsSQL = `
SELECT id, studio_id, date, start_min, end_min, status,
       customer_name, customer_email, customer_phone, note,
       created_at, updated_at
FROM bookings
WHERE studio_id = $1 AND date = $2 AND status = 'confirmed'
ORDER BY start_min
`

func (r *commandReadsImpl) ActiveBookings(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]shared.BookingSnapshot, error) {
	rows, err := r.dbtx.Query(ctx, activeBookingsSQL,
		pgconv.UUIDToPgtype(studioID),
		pgconv.DateToPgtype(date.Time(time.UTC)),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	defer rows.Close()

	var snaps []shared.BookingSnapshot
	for rows.Next() {
		snap, scanErr := scanBookingSnapshot(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", scanErr)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return snaps, nil
}

const blockedWindowsSQL = `
SELECT id, studio_id, date, start_min, end_min, reason
FROM blocked_windows
WHERE studio_id = $1 AND date = $2
ORDER BY start_min
`

func (r *commandReadsImpl) BlockedWindows(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]shared.BlockedWindowSnapshot, error) {
	rows, err := r.dbtx.Query(ctx, blockedWindowsSQL,
		pgconv.UUIDToPgtype(studioID),
		pgconv.DateToPgtype(date.Time(time.UTC)),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocked windows", err)
	}
	defer rows.Close()

	var snaps []shared.BlockedWindowSnapshot
	for rows.Next() {
		var (
			pgID     pgtype.UUID
			pgStudio pgtype.UUID
			pgDate   pgtype.Date
			startMin int32
			endMin   int32
			reason   pgtype.Text
		)
		if scanErr := rows.Scan(&pgID, &pgStudio, &pgDate, &startMin, &endMin, &reason); scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan blocked window row", scanErr)
		}
		snaps = append(snaps, shared.BlockedWindowSnapshot{
			ID:       uuid.UUID(pgID.Bytes),
			StudioID: uuid.UUID(pgStudio.Bytes),
			Date:     booking.DateOf(pgDate.Time),
			StartMin: int(startMin),
			EndMin:   int(endMin),
			Reason:   pgconv.StringPtrFromPgtype(reason),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocked window rows", err)
	}
	return snaps, nil
}

const idempotencyByKeySQL = `
SELECT key, endpoint, request_hash, status, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1
`

func (r *commandReadsImpl) IdempotencyByKey(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		pgKey       pgtype.UUID
		endpoint    string
		requestHash string
		status      string
		pgResult    pgtype.UUID
		expiresAt   pgtype.Timestamptz
	)
	err := r.dbtx.QueryRow(ctx, idempotencyByKeySQL, pgconv.UUIDToPgtype(key)).
		Scan(&pgKey, &endpoint, &requestHash, &status, &pgResult, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:             uuid.UUID(pgKey.Bytes),
		Endpoint:        endpoint,
		RequestHash:     requestHash,
		Status:          status,
		ResultBookingID: pgconv.UUIDPtrFromPgtype(pgResult),
		ExpiresAt:       pgconv.TimeFromPgtype(expiresAt),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingSnapshot(row rowScanner) (*shared.BookingSnapshot, error) {
	var (
		pgID      pgtype.UUID
		pgStudio  pgtype.UUID
		pgDate    pgtype.Date
		startMin  int32
		endMin    int32
		status    string
		name      string
		email     string
		phone     string
		note      pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&pgID, &pgStudio, &pgDate, &startMin, &endMin, &status,
		&name, &email, &phone, &note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &shared.BookingSnapshot{
		ID:            uuid.UUID(pgID.Bytes),
		StudioID:      uuid.UUID(pgStudio.Bytes),
		Date:          booking.DateOf(pgDate.Time),
		StartMin:      int(startMin),
		EndMin:        int(endMin),
		Status:        booking.Status(status),
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Note:          pgconv.StringPtrFromPgtype(note),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func intPtrFromPgtype(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}

func noteToPgtype(n booking.Note) pgtype.Text {
	if n.IsEmpty() {
		return pgtype.Text{Valid: false}
	}
	return pgconv.StringToPgtype(n.String())
}
