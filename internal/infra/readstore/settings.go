package readstore

import (
	"context"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/shared"
)

// settingsReadStoreImpl reads the single booking_settings row on every call.
// When the table is empty the env-provided fallback applies, so a fresh
// database still serves availability.
type settingsReadStoreImpl struct {
	dbtx     db.DBTX
	fallback config.BookingConfig
}

func NewSettingsReadStore(dbtx db.DBTX, fallback config.BookingConfig) shared.SettingsReads {
	return &settingsReadStoreImpl{dbtx: dbtx, fallback: fallback}
}

const settingsSQL = `
SELECT time_zone, open_minutes, close_minutes, granularity_minutes,
       buffer_minutes, min_duration_minutes, max_duration_minutes, advance_days
FROM booking_settings
WHERE id = 1
`

func (r *settingsReadStoreImpl) Get(ctx context.Context) (booking.Settings, error) {
	var (
		timeZone    string
		openMin     int32
		closeMin    int32
		granularity int32
		buffer      int32
		minDuration int32
		maxDuration int32
		advanceDays int32
	)
	err := r.dbtx.QueryRow(ctx, settingsSQL).Scan(
		&timeZone, &openMin, &closeMin, &granularity,
		&buffer, &minDuration, &maxDuration, &advanceDays,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return r.fallbackSettings(), nil
		}
		return booking.Settings{}, infra.WrapRepoErr("failed to read booking settings", err)
	}

	settings := booking.Settings{
		TimeZone:           timeZone,
		OpenMinutes:        int(openMin),
		CloseMinutes:       int(closeMin),
		GranularityMinutes: int(granularity),
		BufferMinutes:      int(buffer),
		MinDurationMinutes: int(minDuration),
		MaxDurationMinutes: int(maxDuration),
		AdvanceDays:        int(advanceDays),
	}
	if err := settings.Validate(); err != nil {
		return booking.Settings{}, infra.WrapRepoErr("stored booking settings are invalid", err)
	}
	return settings, nil
}

func (r *settingsReadStoreImpl) fallbackSettings() booking.Settings {
	return booking.Settings{
		TimeZone:           r.fallback.TimeZone,
		OpenMinutes:        r.fallback.OpenMinutes,
		CloseMinutes:       r.fallback.CloseMinutes,
		GranularityMinutes: r.fallback.GranularityMinutes,
		BufferMinutes:      r.fallback.BufferMinutes,
		MinDurationMinutes: r.fallback.MinDurationMinutes,
		MaxDurationMinutes: r.fallback.MaxDurationMinutes,
		AdvanceDays:        r.fallback.AdvanceDays,
	}
}
