package utils

import "time"

// AddMonths adds whole calendar months to a date, clamping the day to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29). time.AddDate
// would normalize Feb 31 into March, which is not what a stay duration means.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

// Overlaps reports whether the closed date intervals [aStart, aEnd] and
// [bStart, bEnd] share at least one day. Touching boundaries count: a stay
// ending on the day another starts still occupies the bed that day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !bStart.After(aEnd) && !aStart.After(bEnd)
}

// DateOnly truncates a timestamp to midnight UTC, matching how booking and
// visit dates are stored.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
