//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestStudio(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	studioID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO studios (id, name, capacity_tier) VALUES ($1, $2, 'band')",
		studioID, name)
	require.NoError(t, err)

	return studioID
}

// CreateTestStudioWithHours seeds a studio with its own operating hours
// overriding the global booking settings.
func CreateTestStudioWithHours(t *testing.T, db DBLike, name string, openMin, closeMin int) uuid.UUID {
	t.Helper()

	studioID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO studios (id, name, capacity_tier, open_minutes, close_minutes) VALUES ($1, $2, 'solo', $3, $4)",
		studioID, name, openMin, closeMin)
	require.NoError(t, err)

	return studioID
}

func CreateTestBooking(t *testing.T, db DBLike, studioID uuid.UUID, date string, startMin, endMin int, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO bookings (id, studio_id, date, start_min, end_min, status, customer_name, customer_email)
		 VALUES ($1, $2, $3, $4, $5, $6, 'Seed Customer', 'seed@example.com')`,
		bookingID, studioID, date, startMin, endMin, status)
	require.NoError(t, err)

	return bookingID
}

func CreateTestBlockedWindow(t *testing.T, db DBLike, studioID uuid.UUID, date string, startMin, endMin int) uuid.UUID {
	t.Helper()

	windowID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO blocked_windows (id, studio_id, date, start_min, end_min, reason) VALUES ($1, $2, $3, $4, $5, 'maintenance')",
		windowID, studioID, date, startMin, endMin)
	require.NoError(t, err)

	return windowID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// The settings singleton. Tests that need different hours update it in place.
	_, err := pool.Exec(ctx, `
		INSERT INTO booking_settings (id, time_zone, open_minutes, close_minutes, granularity_minutes,
		                              buffer_minutes, min_duration_minutes, max_duration_minutes, advance_days)
		VALUES (1, 'UTC', 480, 1320, 60, 0, 60, 480, 30)
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
