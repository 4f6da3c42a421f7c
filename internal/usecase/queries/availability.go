package queries

import (
	"context"
	"errors"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStudioNotFound = errs.New("studio not found")
	ErrInvalidDate    = errs.New("invalid date")
	ErrOutOfWindow    = errs.New("date outside the advance booking window")
	ErrStoreFailure   = errs.New("availability read failed")
)

// BookingReadStore lists the occupying bookings for a studio day.
type BookingReadStore interface {
	ListActive(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]shared.BookingSnapshot, error)
}

type BlockedWindowReadStore interface {
	ListForDay(ctx context.Context, studioID uuid.UUID, date booking.Date) ([]shared.BlockedWindowSnapshot, error)
}

type StudioReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.StudioSnapshot, error)
	List(ctx context.Context) ([]shared.StudioSnapshot, error)
}

type AvailabilityQueries interface {
	// Grid returns the full slot grid with per-slot availability flags.
	// Unavailable slots are included so callers can render disabled cells.
	Grid(ctx context.Context, studioID uuid.UUID, date string, allowPastSlots bool) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	settings shared.SettingsReads
	studios  StudioReadStore
	blocked  BlockedWindowReadStore
	bookings BookingReadStore
	clock    clock.Clock
}

func NewAvailabilityQueries(
	settings shared.SettingsReads,
	studios StudioReadStore,
	blocked BlockedWindowReadStore,
	bookings BookingReadStore,
	clk clock.Clock,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		settings: settings,
		studios:  studios,
		blocked:  blocked,
		bookings: bookings,
		clock:    clk,
	}
}

func (q *availabilityQueriesImpl) Grid(ctx context.Context, studioID uuid.UUID, dateStr string, allowPastSlots bool) (*AvailabilityView, error) {
	date, err := booking.ParseDate(dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	settings, err := q.settings.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	studioRM, err := q.studios.FindByID(ctx, studioID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStudioNotFound
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	blockedRMs, err := q.blocked.ListForDay(ctx, studioID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	bookingRMs, err := q.bookings.ListActive(ctx, studioID, date)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	open, closeM := settings.OpenMinutes, settings.CloseMinutes
	if studioRM.OpenMinutes != nil {
		open = *studioRM.OpenMinutes
	}
	if studioRM.CloseMinutes != nil {
		closeM = *studioRM.CloseMinutes
	}

	slots, err := schedule.ComputeSlots(schedule.Input{
		Date:               date,
		OpenMinutes:        open,
		CloseMinutes:       closeM,
		GranularityMinutes: settings.GranularityMinutes,
		BufferMinutes:      settings.BufferMinutes,
		AdvanceDays:        settings.AdvanceDays,
		Blocked:            blockedIntervals(blockedRMs),
		Bookings:           busyFromSnapshots(bookingRMs, uuid.Nil),
		Now:                q.clock.Now(),
		Location:           settings.Location(),
		AllowPastSlots:     allowPastSlots,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrOutOfWindow) {
			return nil, ErrOutOfWindow
		}
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	view := &AvailabilityView{
		StudioID:           studioID,
		Date:               date.String(),
		GranularityMinutes: settings.GranularityMinutes,
		Slots:              make([]SlotView, 0, len(slots)),
	}
	for _, s := range slots {
		slot, slotErr := booking.NewTimeSlot(s.StartMin, s.EndMin)
		if slotErr != nil {
			return nil, errs.Mark(slotErr, ErrStoreFailure)
		}
		view.Slots = append(view.Slots, SlotView{
			StartTime: slot.FormatStart(),
			EndTime:   slot.FormatEnd(),
			Available: s.Available,
		})
	}

	return view, nil
}

func blockedIntervals(rms []shared.BlockedWindowSnapshot) []schedule.Interval {
	out := make([]schedule.Interval, 0, len(rms))
	for _, rm := range rms {
		out = append(out, schedule.Interval{StartMin: rm.StartMin, EndMin: rm.EndMin})
	}
	return out
}

// busyFromSnapshots projects booking snapshots onto the day, optionally
// excluding one booking id (the update flow excludes the booking itself).
func busyFromSnapshots(rms []shared.BookingSnapshot, exclude uuid.UUID) []schedule.Busy {
	out := make([]schedule.Busy, 0, len(rms))
	for _, rm := range rms {
		if exclude != uuid.Nil && rm.ID == exclude {
			continue
		}
		out = append(out, schedule.Busy{
			ID:       rm.ID,
			Interval: schedule.Interval{StartMin: rm.StartMin, EndMin: rm.EndMin},
			Status:   rm.Status,
		})
	}
	return out
}
