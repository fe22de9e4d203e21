package utils

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a requested range ends before it starts.
var ErrInvalidRange = errors.New("invalid date range: end before start")

// DateInterval is a closed calendar-day range: it covers every day from Start
// through End inclusive. Start is floored to 00:00:00 and End is ceiled to
// 23:59:59 of its day, so comparisons work at day granularity regardless of
// the wall-clock times callers pass in. Immutable once constructed.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// StartOfDay floors t to 00:00:00 in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay ceils t to 23:59:59.999999999 in its own location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// NormalizeInterval builds a DateInterval from raw check-in/check-out times.
// Fails with ErrInvalidRange if the normalized start lands after the end.
func NormalizeInterval(rawStart, rawEnd time.Time) (DateInterval, error) {
	iv := DateInterval{Start: StartOfDay(rawStart), End: EndOfDay(rawEnd)}
	if iv.Start.After(iv.End) {
		return DateInterval{}, ErrInvalidRange
	}
	return iv, nil
}

// Overlaps reports whether two normalized intervals share at least one
// calendar day. Standard closed-interval test; containment and identical
// ranges count as overlapping.
func Overlaps(a, b DateInterval) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}

// Nights returns the calendar-day difference between Start and End, i.e. the
// number of nights of the stay (check-out date minus check-in date). A result
// of zero means same-day start and end, which is not a bookable stay; callers
// pricing a stay must guard against it.
func (iv DateInterval) Nights() int {
	// Count from date components, not elapsed hours: a DST transition inside
	// the stay makes one day 23 or 25 hours long and hour division miscounts.
	sy, sm, sd := iv.Start.Date()
	ey, em, ed := iv.End.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}

// DaysCovered enumerates every calendar day from Start through End inclusive,
// each at 00:00:00. Used to grey out booked days in a date picker.
func (iv DateInterval) DaysCovered() []time.Time {
	var days []time.Time
	for d := StartOfDay(iv.Start); !d.After(iv.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
