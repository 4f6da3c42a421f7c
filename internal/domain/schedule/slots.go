// Package schedule computes the bookable slot grid for a studio day. It is
// the single consolidated implementation of the interval arithmetic; every
// availability read and every booking conflict re-check goes through here.
package schedule

import (
	"errors"
	"time"

	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidGrid = errors.New("invalid slot grid parameters")
	ErrOutOfWindow = errors.New("date outside the advance booking window")
)

// Slot is one grid cell with its availability flag. The full grid is always
// returned so callers can render unavailable cells disabled.
type Slot struct {
	StartMin  int
	EndMin    int
	Available bool
}

// Busy is an existing booking projected onto the day.
type Busy struct {
	ID       uuid.UUID
	Interval Interval
	Status   booking.Status
}

// Input carries everything ComputeSlots needs. All fields are explicit so
// tests can supply arbitrary settings deterministically; the function reads
// no process state.
type Input struct {
	Date               booking.Date
	OpenMinutes        int
	CloseMinutes       int
	GranularityMinutes int
	BufferMinutes      int
	AdvanceDays        int

	Blocked  []Interval
	Bookings []Busy
	// OccupyingStatuses defaults to confirmed-only when empty.
	OccupyingStatuses []booking.Status

	Now            time.Time
	Location       *time.Location
	AllowPastSlots bool
}

// ComputeSlots returns the ordered slot grid for one studio day.
//
// The grid runs from open to close at the configured granularity, dropping a
// trailing partial slot. A slot is unavailable when it overlaps a blocked
// window, overlaps an occupying booking expanded by the buffer, or has fully
// elapsed on the current day (unless AllowPastSlots). A date beyond the
// advance window is an error, not a partial grid.
func ComputeSlots(in Input) ([]Slot, error) {
	if in.GranularityMinutes <= 0 ||
		in.OpenMinutes < 0 || in.CloseMinutes > minutesPerDay ||
		in.OpenMinutes >= in.CloseMinutes {
		return nil, ErrInvalidGrid
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	today := booking.DateOf(in.Now.In(loc))

	if in.AdvanceDays > 0 && today.DaysUntil(in.Date) > in.AdvanceDays {
		return nil, ErrOutOfWindow
	}

	occupying := in.OccupyingStatuses
	if len(occupying) == 0 {
		occupying = []booking.Status{booking.StatusConfirmed}
	}

	busy := occupiedIntervals(in.Bookings, occupying, in.BufferMinutes)

	nowMin := -1
	switch {
	case in.AllowPastSlots:
		// privileged callers may book historical slots
	case in.Date.Before(today):
		nowMin = minutesPerDay // whole day elapsed
	case in.Date.Equal(today):
		t := in.Now.In(loc)
		nowMin = t.Hour()*60 + t.Minute()
	}

	var slots []Slot
	for start := in.OpenMinutes; start+in.GranularityMinutes <= in.CloseMinutes; start += in.GranularityMinutes {
		cell := Interval{StartMin: start, EndMin: start + in.GranularityMinutes}

		available := !overlapsAny(cell, in.Blocked) && !overlapsAny(cell, busy)

		// A fully elapsed slot is hidden; one still in progress stays
		// bookable.
		if available && nowMin >= 0 && cell.EndMin <= nowMin {
			available = false
		}

		slots = append(slots, Slot{
			StartMin:  cell.StartMin,
			EndMin:    cell.EndMin,
			Available: available,
		})
	}

	return slots, nil
}

// HasConflict is the overlap primitive shared with the booking creator: it
// reports whether candidate collides with any occupying booking after buffer
// expansion. The creator runs it inside its transaction against a fresh read.
func HasConflict(candidate Interval, bufferMinutes int, bookings []Busy, occupying []booking.Status) bool {
	if len(occupying) == 0 {
		occupying = []booking.Status{booking.StatusConfirmed}
	}
	return overlapsAny(candidate, occupiedIntervals(bookings, occupying, bufferMinutes))
}

func occupiedIntervals(bookings []Busy, occupying []booking.Status, bufferMin int) []Interval {
	var out []Interval
	for _, b := range bookings {
		if !statusIn(b.Status, occupying) {
			continue
		}
		out = append(out, b.Interval.Expand(bufferMin))
	}
	return out
}

func overlapsAny(candidate Interval, intervals []Interval) bool {
	for _, iv := range intervals {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

func statusIn(s booking.Status, set []booking.Status) bool {
	for _, o := range set {
		if s == o {
			return true
		}
	}
	return false
}
