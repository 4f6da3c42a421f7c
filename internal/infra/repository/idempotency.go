package repository

import (
	"context"
	"time"

	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type idempotencyRepositoryImpl struct{}

func NewIdempotencyRepository() *idempotencyRepositoryImpl {
	return &idempotencyRepositoryImpl{}
}

const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at, created_at)
VALUES ($1, $2, $3, 'processing', $4, now())
ON CONFLICT (key) DO NOTHING
`

// TryInsert claims the key with ON CONFLICT DO NOTHING. Zero rows affected
// means another request holds or completed the key.
func (r *idempotencyRepositoryImpl) TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, tryInsertIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		endpoint,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $2
WHERE key = $1
`

func (r *idempotencyRepositoryImpl) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error {
	tag, err := tx.Exec(ctx, completeIdempotencySQL,
		pgconv.UUIDToPgtype(key),
		pgconv.UUIDToPgtype(resultBookingID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}
