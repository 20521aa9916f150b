package ticktick

import "time"

// Clock supplies "now" so day-boundary logic is testable. The returned time's
// location is the zone day boundaries are computed in.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in the process's local zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

// localDate truncates an epoch-millis instant to its calendar date in now's
// zone.
func localDate(ms int64, now time.Time) time.Time {
	t := time.UnixMilli(ms).In(now.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// isPreviousDays reports whether ms falls on a calendar day strictly before
// today. The three classifications are mutually exclusive and exhaustive for
// any finite instant.
func isPreviousDays(ms int64, now time.Time) bool {
	return localDate(ms, now).Before(today(now))
}

func isToday(ms int64, now time.Time) bool {
	return localDate(ms, now).Equal(today(now))
}

func isUpcoming(ms int64, now time.Time) bool {
	return localDate(ms, now).After(today(now))
}

func isTodayOrAfter(ms int64, now time.Time) bool {
	return isToday(ms, now) || isUpcoming(ms, now)
}
