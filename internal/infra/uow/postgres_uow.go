package uow

import (
	"context"
	"crypto/rand"
	"errors"
	"hash/fnv"
	"math/big"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/repository"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries     = 3
	baseRetryDelay = 10 * time.Millisecond
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// Within runs fn in a single transaction and retries the whole closure on
// serialization failures and deadlocks. fn must therefore be safe to run
// more than once.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepWithBackoff(ctx, attempt); err != nil {
				return err
			}
		}

		err := u.runInTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}

	return errs.Wrap(lastErr, "transaction retries exhausted")
}

func (u *PostgresUoW) runInTx(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() {
		// Rollback after a successful commit is a no-op.
		_ = pgxTx.Rollback(ctx)
	}()

	if err := fn(ctx, &pgTx{tx: pgxTx}); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit transaction", err)
	}
	return nil
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return repository.NewCommandReads(u.pool)
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return repository.NewBookingRepository()
}

func (t *pgTx) BlockedWindows() shared.BlockedWindowRepository {
	return repository.NewBlockedWindowRepository()
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	return repository.NewIdempotencyRepository()
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	return repository.NewNotificationRepository()
}

func (t *pgTx) Reads() shared.CommandReads {
	return repository.NewCommandReads(t.tx)
}

func (t *pgTx) DB() db.DBTX {
	return t.tx
}

// LockStudioDate takes a transaction-scoped advisory lock keyed by the
// (studio, date) pair. The lock is released automatically at commit or
// rollback.
func (t *pgTx) LockStudioDate(ctx context.Context, studioID uuid.UUID, date booking.Date) error {
	h := fnv.New64a()
	_, _ = h.Write([]byte(studioID.String()))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(date.String()))
	key := int64(h.Sum64())

	if _, err := t.tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return infra.WrapRepoErr("failed to acquire studio date lock", err)
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 40001: serialization_failure, 40P01: deadlock_detected.
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func sleepWithBackoff(ctx context.Context, attempt int) error {
	delay := baseRetryDelay * time.Duration(1<<uint(attempt-1))

	jitter, err := rand.Int(rand.Reader, big.NewInt(int64(delay)/2+1))
	if err == nil {
		delay += time.Duration(jitter.Int64())
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
