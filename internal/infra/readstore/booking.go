package readstore

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type bookingReadStoreImpl struct {
	dbtx db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *bookingReadStoreImpl {
	return &bookingReadStoreImpl{dbtx: dbtx}
}

const listActiveSQL = `
SELECT id, studio_id, date, start_min, end_min, status,
       customer_name, customer_email, customer_phone, note,
       created_at, updated_at
FROM bookings
WHERE studio_id = $1 AND date = $2 AND status = 'confirmed'
ORDER BY start_min
`

// ListActive feeds the availability calculator; it only returns rows whose
// status occupies a slot.
func (r *bookingReadStoreImpl) ListActive(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]shared.BookingSnapshot, error) {
	rows, err := r.dbtx.Query(ctx, listActiveSQL,
		pgconv.UUIDToPgtype(studioID),
		pgconv.DateToPgtype(date.Time(time.UTC)),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	defer rows.Close()

	var snaps []shared.BookingSnapshot
	for rows.Next() {
		snap, scanErr := scanSnapshot(rows)
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

const findBookingViewSQL = `
SELECT b.id, b.studio_id, s.name, b.date, b.start_min, b.end_min, b.status,
       b.customer_name, b.customer_email, b.customer_phone, b.note,
       b.created_at, b.updated_at
FROM bookings b
JOIN studios s ON s.id = b.studio_id
WHERE b.id = $1
`

func (r *bookingReadStoreImpl) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanView(r.dbtx.QueryRow(ctx, findBookingViewSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

const listByStudioDateSQL = `
SELECT b.id, b.studio_id, s.name, b.date, b.start_min, b.end_min, b.status,
       b.customer_name, b.customer_email, b.customer_phone, b.note,
       b.created_at, b.updated_at
FROM bookings b
JOIN studios s ON s.id = b.studio_id
WHERE b.studio_id = $1 AND b.date = $2
ORDER BY b.start_min
`

func (r *bookingReadStoreImpl) FindByStudioDate(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]*queries.BookingView, error) {
	rows, err := r.dbtx.Query(ctx, listByStudioDateSQL,
		pgconv.UUIDToPgtype(studioID),
		pgconv.DateToPgtype(date.Time(time.UTC)),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return collectViews(rows)
}

const listByCustomerEmailSQL = `
SELECT b.id, b.studio_id, s.name, b.date, b.start_min, b.end_min, b.status,
       b.customer_name, b.customer_email, b.customer_phone, b.note,
       b.created_at, b.updated_at
FROM bookings b
JOIN studios s ON s.id = b.studio_id
WHERE b.customer_email = $1
ORDER BY b.date DESC, b.start_min DESC
LIMIT $2
`

func (r *bookingReadStoreImpl) FindByCustomerEmail(ctx context.Context, email string, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.dbtx.Query(ctx, listByCustomerEmailSQL, email, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	defer rows.Close()

	return collectViews(rows)
}

type viewRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectViews(rows viewRows) ([]*queries.BookingView, error) {
	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

func scanView(row rowScanner) (*queries.BookingView, error) {
	var (
		pgID       pgtype.UUID
		pgStudio   pgtype.UUID
		studioName string
		pgDate     pgtype.Date
		startMin   int32
		endMin     int32
		status     string
		name       string
		email      string
		phone      string
		note       pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&pgID, &pgStudio, &studioName, &pgDate, &startMin, &endMin, &status,
		&name, &email, &phone, &note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(int(startMin), int(endMin))
	if err != nil {
		return nil, err
	}

	return &queries.BookingView{
		ID:            uuid.UUID(pgID.Bytes),
		StudioID:      uuid.UUID(pgStudio.Bytes),
		StudioName:    studioName,
		Date:          booking.DateOf(pgDate.Time).String(),
		StartTime:     slot.FormatStart(),
		EndTime:       slot.FormatEnd(),
		Status:        status,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: phone,
		Note:          pgconv.StringPtrFromPgtype(note),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func scanSnapshot(row rowScanner) (*shared.BookingSnapshot, error) {
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
