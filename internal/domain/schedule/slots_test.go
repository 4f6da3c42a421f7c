//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() schedule.Input {
	return schedule.Input{
		Date:               booking.NewDate(2026, time.September, 10),
		OpenMinutes:        8 * 60,
		CloseMinutes:       22 * 60,
		GranularityMinutes: 60,
		BufferMinutes:      0,
		AdvanceDays:        30,
		Now:                time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC),
		Location:           time.UTC,
	}
}

func busyAt(startMin, endMin int, status booking.Status) schedule.Busy {
	return schedule.Busy{
		ID:       uuid.New(),
		Interval: schedule.Interval{StartMin: startMin, EndMin: endMin},
		Status:   status,
	}
}

func availableStarts(slots []schedule.Slot) []int {
	var out []int
	for _, s := range slots {
		if s.Available {
			out = append(out, s.StartMin)
		}
	}
	return out
}

func TestComputeSlots_GridShape(t *testing.T) {
	t.Run("full day at 60 minute granularity", func(t *testing.T) {
		slots, err := schedule.ComputeSlots(baseInput())
		require.NoError(t, err)

		require.Len(t, slots, 14)
		assert.Equal(t, 8*60, slots[0].StartMin)
		assert.Equal(t, 9*60, slots[0].EndMin)
		assert.Equal(t, 21*60, slots[13].StartMin)
		assert.Equal(t, 22*60, slots[13].EndMin)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("trailing partial slot is dropped", func(t *testing.T) {
		in := baseInput()
		in.OpenMinutes = 9 * 60
		in.CloseMinutes = 10*60 + 30
		in.GranularityMinutes = 60

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)

		// 09:00-10:30 fits exactly one full 60 minute slot.
		require.Len(t, slots, 1)
		assert.Equal(t, 9*60, slots[0].StartMin)
	})

	t.Run("granularity 30 doubles the cells", func(t *testing.T) {
		in := baseInput()
		in.GranularityMinutes = 30

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)
		assert.Len(t, slots, 28)
	})

	t.Run("invalid grid parameters", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*schedule.Input)
		}{
			{"zero granularity", func(in *schedule.Input) { in.GranularityMinutes = 0 }},
			{"negative open", func(in *schedule.Input) { in.OpenMinutes = -1 }},
			{"close past midnight", func(in *schedule.Input) { in.CloseMinutes = 24*60 + 1 }},
			{"open after close", func(in *schedule.Input) { in.OpenMinutes = 23 * 60; in.CloseMinutes = 8 * 60 }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := baseInput()
				tc.mutate(&in)
				_, err := schedule.ComputeSlots(in)
				assert.ErrorIs(t, err, schedule.ErrInvalidGrid)
			})
		}
	})
}

func TestComputeSlots_Idempotence(t *testing.T) {
	in := baseInput()
	in.BufferMinutes = 15
	in.Blocked = []schedule.Interval{{StartMin: 12 * 60, EndMin: 13 * 60}}
	in.Bookings = []schedule.Busy{
		busyAt(9*60, 10*60, booking.StatusConfirmed),
		busyAt(15*60, 16*60, booking.StatusConfirmed),
	}

	first, err := schedule.ComputeSlots(in)
	require.NoError(t, err)
	second, err := schedule.ComputeSlots(in)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same input produced different grids (-first +second):\n%s", diff)
	}
}

func TestComputeSlots_Occupancy(t *testing.T) {
	t.Run("confirmed booking blocks its cell", func(t *testing.T) {
		in := baseInput()
		in.Bookings = []schedule.Busy{busyAt(10*60, 11*60, booking.StatusConfirmed)}

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)

		for _, s := range slots {
			if s.StartMin == 10*60 {
				assert.False(t, s.Available)
			} else {
				assert.True(t, s.Available)
			}
		}
	})

	t.Run("cancelled and no_show bookings do not block", func(t *testing.T) {
		in := baseInput()
		in.Bookings = []schedule.Busy{
			busyAt(10*60, 11*60, booking.StatusCancelled),
			busyAt(11*60, 12*60, booking.StatusNoShow),
		}

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("buffer expands the existing booking on both sides", func(t *testing.T) {
		in := baseInput()
		in.BufferMinutes = 30
		in.Bookings = []schedule.Busy{busyAt(10*60, 11*60, booking.StatusConfirmed)}

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)

		// Expanded interval is [09:30, 11:30): the 09:00, 10:00 and 11:00
		// cells all touch it.
		assert.NotContains(t, availableStarts(slots), 9*60)
		assert.NotContains(t, availableStarts(slots), 10*60)
		assert.NotContains(t, availableStarts(slots), 11*60)
		assert.Contains(t, availableStarts(slots), 12*60)
	})

	t.Run("partial blocked window overlap disables the whole cell", func(t *testing.T) {
		in := baseInput()
		in.Blocked = []schedule.Interval{{StartMin: 10*60 + 45, EndMin: 11*60 + 15}}

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)

		assert.NotContains(t, availableStarts(slots), 10*60)
		assert.NotContains(t, availableStarts(slots), 11*60)
		assert.Contains(t, availableStarts(slots), 12*60)
	})

	t.Run("overlapping existing bookings are each applied", func(t *testing.T) {
		// Defensive: rows that should never coexist still both mask the grid.
		in := baseInput()
		in.Bookings = []schedule.Busy{
			busyAt(10*60, 12*60, booking.StatusConfirmed),
			busyAt(11*60, 13*60, booking.StatusConfirmed),
		}

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)
		for _, start := range []int{10 * 60, 11 * 60, 12 * 60} {
			assert.NotContains(t, availableStarts(slots), start)
		}
	})
}

func TestComputeSlots_PastSlots(t *testing.T) {
	t.Run("elapsed slot hidden, in-progress slot bookable", func(t *testing.T) {
		in := baseInput()
		in.Date = booking.NewDate(2026, time.September, 1)
		in.OpenMinutes = 8 * 60
		in.CloseMinutes = 10 * 60
		in.Now = time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)

		require.Len(t, slots, 2)
		assert.False(t, slots[0].Available, "08:00-09:00 has fully elapsed")
		assert.True(t, slots[1].Available, "09:00-10:00 is still in progress")
	})

	t.Run("whole day unavailable for a past date", func(t *testing.T) {
		in := baseInput()
		in.Date = booking.NewDate(2026, time.August, 31)

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)
		for _, s := range slots {
			assert.False(t, s.Available)
		}
	})

	t.Run("AllowPastSlots restores elapsed slots", func(t *testing.T) {
		in := baseInput()
		in.Date = booking.NewDate(2026, time.August, 31)
		in.AllowPastSlots = true

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("today is decided in the operating timezone", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		// 23:30 UTC on Aug 31 is already 08:30 on Sep 1 in Tokyo, so the
		// Sep 1 early slot has elapsed there.
		in := baseInput()
		in.Date = booking.NewDate(2026, time.September, 1)
		in.OpenMinutes = 8 * 60
		in.CloseMinutes = 10 * 60
		in.GranularityMinutes = 30
		in.Now = time.Date(2026, time.August, 31, 23, 30, 0, 0, time.UTC)
		in.Location = tokyo

		slots, err := schedule.ComputeSlots(in)
		require.NoError(t, err)

		require.Len(t, slots, 4)
		assert.False(t, slots[0].Available, "08:00-08:30 Tokyo time has elapsed")
		assert.True(t, slots[1].Available)
	})
}

func TestComputeSlots_AdvanceWindow(t *testing.T) {
	t.Run("date beyond the window is an error", func(t *testing.T) {
		in := baseInput()
		in.AdvanceDays = 7
		in.Date = booking.NewDate(2026, time.September, 9)

		_, err := schedule.ComputeSlots(in)
		assert.ErrorIs(t, err, schedule.ErrOutOfWindow)
	})

	t.Run("last day inside the window is accepted", func(t *testing.T) {
		in := baseInput()
		in.AdvanceDays = 7
		in.Date = booking.NewDate(2026, time.September, 8)

		_, err := schedule.ComputeSlots(in)
		assert.NoError(t, err)
	})

	t.Run("zero advance days disables the check", func(t *testing.T) {
		in := baseInput()
		in.AdvanceDays = 0
		in.Date = booking.NewDate(2030, time.January, 1)

		_, err := schedule.ComputeSlots(in)
		assert.NoError(t, err)
	})
}

func TestHasConflict(t *testing.T) {
	confirmed := []schedule.Busy{busyAt(10*60, 11*60, booking.StatusConfirmed)}

	t.Run("touching boundary is not a conflict", func(t *testing.T) {
		candidate := schedule.Interval{StartMin: 11 * 60, EndMin: 12 * 60}
		assert.False(t, schedule.HasConflict(candidate, 0, confirmed, nil))
	})

	t.Run("buffer turns a touching candidate into a conflict", func(t *testing.T) {
		candidate := schedule.Interval{StartMin: 11 * 60, EndMin: 12 * 60}
		assert.True(t, schedule.HasConflict(candidate, 30, confirmed, nil))
	})

	t.Run("candidate clear of the buffered interval", func(t *testing.T) {
		candidate := schedule.Interval{StartMin: 11*60 + 30, EndMin: 12*60 + 30}
		assert.False(t, schedule.HasConflict(candidate, 30, confirmed, nil))
	})

	t.Run("cancelled bookings never conflict", func(t *testing.T) {
		cancelled := []schedule.Busy{busyAt(10*60, 11*60, booking.StatusCancelled)}
		candidate := schedule.Interval{StartMin: 10 * 60, EndMin: 11 * 60}
		assert.False(t, schedule.HasConflict(candidate, 0, cancelled, nil))
	})
}
