package availability

import "time"

// WeekBounds returns the Sunday and the Saturday of the week containing date.
// Both bounds are civil dates (midnight UTC) and inclusive.
func WeekBounds(date time.Time) (start, end time.Time) {
	day := civilDate(date)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// LedgerWindow returns the date range of bookings needed to evaluate dates from..to:
// from the first day of the first week to the last day of the last week
func LedgerWindow(from, to time.Time) (start, end time.Time) {
	start, _ = WeekBounds(from)
	_, end = WeekBounds(to)
	return start, end
}
