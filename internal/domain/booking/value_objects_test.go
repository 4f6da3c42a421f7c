//go:build unit

package booking_test

import (
	"testing"
	"time"

	"studio-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(600, 660)
		require.NoError(t, err)
		assert.Equal(t, 600, slot.StartMinutes())
		assert.Equal(t, 660, slot.EndMinutes())
		assert.Equal(t, time.Hour, slot.Duration())
		assert.Equal(t, "10:00", slot.FormatStart())
		assert.Equal(t, "11:00", slot.FormatEnd())
		assert.Equal(t, "10:00-11:00", slot.String())
	})

	t.Run("rejects malformed bounds", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end int
		}{
			{"negative start", -1, 60},
			{"end past midnight", 1380, 1441},
			{"zero length", 600, 600},
			{"inverted", 660, 600},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := booking.NewTimeSlot(tc.start, tc.end)
				assert.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
			})
		}
	})

	t.Run("parses wall clock strings", func(t *testing.T) {
		slot, err := booking.ParseTimeSlot("09:30", "11:00")
		require.NoError(t, err)
		assert.Equal(t, 570, slot.StartMinutes())
		assert.Equal(t, 660, slot.EndMinutes())
	})

	t.Run("rejects unparseable strings", func(t *testing.T) {
		for _, pair := range [][2]string{
			{"9am", "10am"},
			{"25:00", "26:00"},
			{"", "10:00"},
		} {
			_, err := booking.ParseTimeSlot(pair[0], pair[1])
			assert.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
		}
	})
}

func TestDate(t *testing.T) {
	t.Run("parse and format round trip", func(t *testing.T) {
		d, err := booking.ParseDate("2026-09-10")
		require.NoError(t, err)
		assert.Equal(t, "2026-09-10", d.String())
	})

	t.Run("rejects bad formats", func(t *testing.T) {
		for _, s := range []string{"10/09/2026", "2026-13-01", "2026-9-1", ""} {
			_, err := booking.ParseDate(s)
			assert.ErrorIs(t, err, booking.ErrInvalidDate, s)
		}
	})

	t.Run("ordering and arithmetic", func(t *testing.T) {
		a := booking.NewDate(2026, time.September, 1)
		b := booking.NewDate(2026, time.September, 10)

		assert.True(t, a.Before(b))
		assert.True(t, b.After(a))
		assert.Equal(t, 9, a.DaysUntil(b))
		assert.Equal(t, -9, b.DaysUntil(a))
		assert.Equal(t, b, a.AddDays(9))
	})

	t.Run("DateOf uses the time's own location", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)

		instant := time.Date(2026, time.August, 31, 23, 30, 0, 0, time.UTC)
		assert.Equal(t, "2026-08-31", booking.DateOf(instant).String())
		assert.Equal(t, "2026-09-01", booking.DateOf(instant.In(tokyo)).String())
	})
}

func TestCustomer(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		c, err := booking.NewCustomer("  Mia Wong  ", " mia@example.com ", " 555-0101 ")
		require.NoError(t, err)
		assert.Equal(t, "Mia Wong", c.Name())
		assert.Equal(t, "mia@example.com", c.Email())
		assert.Equal(t, "555-0101", c.Phone())
	})

	t.Run("name and email are required", func(t *testing.T) {
		_, err := booking.NewCustomer("", "mia@example.com", "")
		assert.ErrorIs(t, err, booking.ErrEmptyCustomer)

		_, err = booking.NewCustomer("Mia Wong", "   ", "")
		assert.ErrorIs(t, err, booking.ErrEmptyCustomer)
	})

	t.Run("phone is optional", func(t *testing.T) {
		_, err := booking.NewCustomer("Mia Wong", "mia@example.com", "")
		assert.NoError(t, err)
	})
}
