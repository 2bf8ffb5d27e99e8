package auditor

import "time"

const secondsPerDay = 24 * 60 * 60

// dateOf drops the time of day, in UTC.
func dateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func today(now time.Time) time.Time {
	return dateOf(now)
}

// DaysBetween returns the whole calendar days from one date to another.
func DaysBetween(from, to time.Time) int {
	return int((dateOf(to).Unix() - dateOf(from).Unix()) / secondsPerDay)
}
