package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// Occupies reports whether a booking in this status blocks its slot.
// Only confirmed bookings occupy; the flow confirms every booking on
// creation, so no transient pending state exists.
func (s Status) Occupies() bool {
	return s == StatusConfirmed
}
