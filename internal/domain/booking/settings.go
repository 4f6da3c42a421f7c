package booking

import (
	"errors"
	"time"
)

var ErrInvalidSettings = errors.New("invalid booking settings")

// Settings is the process-wide booking configuration. It is loaded fresh per
// request and passed into the calculator and creator as a value; nothing in
// this package caches it.
type Settings struct {
	TimeZone           string
	OpenMinutes        int
	CloseMinutes       int
	GranularityMinutes int
	BufferMinutes      int
	MinDurationMinutes int
	MaxDurationMinutes int
	AdvanceDays        int
}

func DefaultSettings() Settings {
	return Settings{
		TimeZone:           "UTC",
		OpenMinutes:        8 * 60,
		CloseMinutes:       22 * 60,
		GranularityMinutes: 60,
		BufferMinutes:      0,
		MinDurationMinutes: 60,
		MaxDurationMinutes: 8 * 60,
		AdvanceDays:        30,
	}
}

func (s Settings) Validate() error {
	if s.GranularityMinutes <= 0 ||
		s.OpenMinutes < 0 || s.CloseMinutes > minutesPerDay ||
		s.OpenMinutes >= s.CloseMinutes ||
		s.BufferMinutes < 0 ||
		s.MinDurationMinutes <= 0 || s.MaxDurationMinutes < s.MinDurationMinutes ||
		s.AdvanceDays < 0 {
		return ErrInvalidSettings
	}
	if _, err := time.LoadLocation(s.TimeZone); err != nil {
		return ErrInvalidSettings
	}
	return nil
}

// Location resolves the operating timezone, falling back to UTC for an
// unknown name so that a bad settings row degrades instead of failing reads.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidateDuration checks a slot's length against the configured bounds.
func (s Settings) ValidateDuration(slot TimeSlot) error {
	d := int(slot.Duration() / time.Minute)
	if d < s.MinDurationMinutes || d > s.MaxDurationMinutes {
		return ErrInvalidTimeSlot
	}
	return nil
}
