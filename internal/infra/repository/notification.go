package repository

import (
	"context"
	"time"

	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type notificationRepositoryImpl struct{}

func NewNotificationRepository() *notificationRepositoryImpl {
	return &notificationRepositoryImpl{}
}

const createNotificationJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, created_at)
VALUES ($1, $2, $3, $4, 'pending', $5, now())
`

// CreateJob enqueues a delivery job for an external worker. Delivery itself
// is out of process; this table is the handoff point.
func (r *notificationRepositoryImpl) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createNotificationJobSQL,
		pgconv.UUIDToPgtype(uuid.New()),
		kind,
		topic,
		payload,
		pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
