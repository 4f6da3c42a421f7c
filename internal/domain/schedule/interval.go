package schedule

const minutesPerDay = 24 * 60

// Interval is a half-open [Start,End) range in minutes since midnight.
type Interval struct {
	StartMin int
	EndMin   int
}

// Overlaps uses the half-open rule: [a,b) and [c,d) overlap iff a < d && b > c,
// so touching intervals do not conflict.
func (i Interval) Overlaps(other Interval) bool {
	return i.StartMin < other.EndMin && i.EndMin > other.StartMin
}

// Expand grows the interval by buffer minutes on both ends, clamped to the
// day. The buffer is applied to the existing booking, never to the candidate.
func (i Interval) Expand(bufferMin int) Interval {
	if bufferMin <= 0 {
		return i
	}
	start := i.StartMin - bufferMin
	if start < 0 {
		start = 0
	}
	end := i.EndMin + bufferMin
	if end > minutesPerDay {
		end = minutesPerDay
	}
	return Interval{StartMin: start, EndMin: end}
}

func (i Interval) IsValid() bool {
	return i.StartMin >= 0 && i.EndMin <= minutesPerDay && i.StartMin < i.EndMin
}
