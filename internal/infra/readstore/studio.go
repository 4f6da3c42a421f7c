package readstore

import (
	"context"

	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type studioReadStoreImpl struct {
	dbtx db.DBTX
}

func NewStudioReadStore(dbtx db.DBTX) queries.StudioReadStore {
	return &studioReadStoreImpl{dbtx: dbtx}
}

const findStudioSQL = `
SELECT id, name, capacity_tier, open_minutes, close_minutes
FROM studios
WHERE id = $1
`

func (r *studioReadStoreImpl) FindByID(ctx context.Context, id uuid.UUID) (*shared.StudioSnapshot, error) {
	snap, err := scanStudio(r.dbtx.QueryRow(ctx, findStudioSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("studio not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find studio", err)
	}
	return snap, nil
}

const listStudiosSQL = `
SELECT id, name, capacity_tier, open_minutes, close_minutes
FROM studios
ORDER BY name
`

func (r *studioReadStoreImpl) List(ctx context.Context) ([]shared.StudioSnapshot, error) {
	rows, err := r.dbtx.Query(ctx, listStudiosSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list studios", err)
	}
	defer rows.Close()

	var snaps []shared.StudioSnapshot
	for rows.Next() {
		snap, scanErr := scanStudio(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan studio row", scanErr)
		}
		snaps = append(snaps, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate studio rows", err)
	}
	return snaps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudio(row rowScanner) (*shared.StudioSnapshot, error) {
	var (
		pgID         pgtype.UUID
		name         string
		capacityTier string
		openMin      pgtype.Int4
		closeMin     pgtype.Int4
	)
	if err := row.Scan(&pgID, &name, &capacityTier, &openMin, &closeMin); err != nil {
		return nil, err
	}
	return &shared.StudioSnapshot{
		ID:           uuid.UUID(pgID.Bytes),
		Name:         name,
		CapacityTier: capacityTier,
		OpenMinutes:  intPtr(openMin),
		CloseMinutes: intPtr(closeMin),
	}, nil
}

func intPtr(pi pgtype.Int4) *int {
	if !pi.Valid {
		return nil
	}
	v := int(pi.Int32)
	return &v
}
