package repository

import (
	"context"
	"time"

	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type blockedWindowRepositoryImpl struct{}

func NewBlockedWindowRepository() *blockedWindowRepositoryImpl {
	return &blockedWindowRepositoryImpl{}
}

const createBlockedWindowSQL = `
INSERT INTO blocked_windows (id, studio_id, date, start_min, end_min, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
`

func (r *blockedWindowRepositoryImpl) Create(ctx context.Context, tx db.DBTX, fields shared.BlockedWindowFields) (uuid.UUID, error) {
	id := uuid.New()
	_, err := tx.Exec(ctx, createBlockedWindowSQL,
		pgconv.UUIDToPgtype(id),
		pgconv.UUIDToPgtype(fields.StudioID),
		pgconv.DateToPgtype(fields.Date.Time(time.UTC)),
		int32(fields.StartMin),
		int32(fields.EndMin),
		pgconv.StringPtrToPgtype(fields.Reason),
	)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create blocked window", err, classifyWriteError(err))
	}
	return id, nil
}

const deleteBlockedWindowSQL = `
DELETE FROM blocked_windows
WHERE id = $1
`

func (r *blockedWindowRepositoryImpl) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBlockedWindowSQL, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to delete blocked window", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("blocked window not found", nil, infra.KindNotFound)
	}
	return nil
}
