package services

import "time"

// Clock abstracts "what time is it" so day-boundary behaviour can be driven
// from tests. Production code uses SystemClock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall-clock implementation of Clock.
var SystemClock Clock = systemClock{}

// calendarDay maps t to a civil day number (days since the Unix epoch) for
// the date components of t in loc. Comparing day numbers avoids rolling-24h
// and DST ambiguities.
func calendarDay(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// SameCalendarDay reports whether a and b fall on the same calendar date in loc.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	return calendarDay(a, loc) == calendarDay(b, loc)
}

// BeforeCalendarDay reports whether a falls on a strictly earlier calendar
// date than b in loc.
func BeforeCalendarDay(a, b time.Time, loc *time.Location) bool {
	return calendarDay(a, loc) < calendarDay(b, loc)
}
