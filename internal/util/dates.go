package util

import "time"

// StartOfDayUTC returns UTC midnight of the day containing t
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC returns 23:59:59.999999999 UTC of the day containing t
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24*time.Hour - time.Nanosecond)
}

// DayRangeUTC returns the inclusive UTC bounds of the day containing t
func DayRangeUTC(t time.Time) (start, end time.Time) {
	start = StartOfDayUTC(t)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}

// StartOfWeekUTC returns UTC midnight of the Monday of the week
// containing t. Weeks start Monday; Sunday belongs to the preceding week.
func StartOfWeekUTC(t time.Time) time.Time {
	day := StartOfDayUTC(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}

// StartOfMonthUTC returns UTC midnight of the first day of the month
// containing t
func StartOfMonthUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonthUTC returns the inclusive UTC end of the month containing t
func EndOfMonthUTC(t time.Time) time.Time {
	return StartOfMonthUTC(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
