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

type blockedWindowReadStoreImpl struct {
	dbtx db.DBTX
}

func NewBlockedWindowReadStore(dbtx db.DBTX) queries.BlockedWindowReadStore {
	return &blockedWindowReadStoreImpl{dbtx: dbtx}
}

const listBlockedSQL = `
SELECT id, studio_id, date, start_min, end_min, reason
FROM blocked_windows
WHERE studio_id = $1 AND date = $2
ORDER BY start_min
`

func (r *blockedWindowReadStoreImpl) ListForDay(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]shared.BlockedWindowSnapshot, error) {
	rows, err := r.dbtx.Query(ctx, listBlockedSQL,
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
