package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyCustomer   = errors.New("customer name and email are required")
)

const minutesPerDay = 24 * 60

// TimeSlot is a half-open [start,end) interval in minutes since midnight.
// Overlap and buffer math on whole days stays in plain integers, which keeps
// the comparison free of timezone conversions.
type TimeSlot struct {
	startMin int
	endMin   int
}

func NewTimeSlot(startMin, endMin int) (TimeSlot, error) {
	if startMin < 0 || endMin > minutesPerDay || endMin <= startMin {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{startMin: startMin, endMin: endMin}, nil
}

// ParseTimeSlot builds a slot from "HH:MM" wall-clock strings.
func ParseTimeSlot(start, end string) (TimeSlot, error) {
	startMin, err := parseMinutes(start)
	if err != nil {
		return TimeSlot{}, err
	}
	endMin, err := parseMinutes(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return NewTimeSlot(startMin, endMin)
}

func parseMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeSlot
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (ts TimeSlot) StartMinutes() int { return ts.startMin }
func (ts TimeSlot) EndMinutes() int   { return ts.endMin }

func (ts TimeSlot) Duration() time.Duration {
	return time.Duration(ts.endMin-ts.startMin) * time.Minute
}

// Overlaps uses the half-open rule: touching slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.startMin < other.endMin && ts.endMin > other.startMin
}

func (ts TimeSlot) FormatStart() string { return formatMinutes(ts.startMin) }
func (ts TimeSlot) FormatEnd() string   { return formatMinutes(ts.endMin) }

func (ts TimeSlot) String() string {
	return ts.FormatStart() + "-" + ts.FormatEnd()
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Date is a civil calendar date with no time-of-day or timezone. The zone
// only matters when deciding what "today" is, which is the caller's job.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf extracts the civil date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Time returns midnight of the date in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d Date) Equal(o Date) bool {
	return d == o
}

func (d Date) Before(o Date) bool {
	return d.Time(time.UTC).Before(o.Time(time.UTC))
}

func (d Date) After(o Date) bool {
	return o.Before(d)
}

// DaysUntil returns o - d in whole days; negative when o precedes d.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time(time.UTC).Sub(d.Time(time.UTC)) / (24 * time.Hour))
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Customer is the booking owner's contact info. Identity is external; the
// booking row is the only record this service keeps.
type Customer struct {
	name  string
	email string
	phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Customer{}, ErrEmptyCustomer
	}
	return Customer{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string { return n.value }
func (n Note) IsEmpty() bool  { return n.value == "" }
