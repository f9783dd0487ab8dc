package availability

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// MinBookableInstant returns the earliest instant a slot may start at.
//
// Unit "hours" adds the window to now directly. Unit "days" adds the window to
// the calendar date of now and floors to midnight in now's location. The two
// modes differ near midnight: a 24 hour window and a 1 day window are not the same.
// The result is never earlier than now.
func MinBookableInstant(settings *domain.CalendarSettings, now time.Time) time.Time {
	var earliest time.Time

	switch settings.AdvanceBookingUnit {
	case domain.AdvanceUnitDays:
		y, m, d := now.Date()
		earliest = time.Date(y, m, d+settings.AdvanceBookingWindow, 0, 0, 0, 0, now.Location())
	default:
		earliest = now.Add(time.Duration(settings.AdvanceBookingWindow) * time.Hour)
	}

	// Отступление от "полночь даты": при окне 0 дней прошедшие слоты сегодня не предлагаются
	if earliest.Before(now) {
		return now
	}
	return earliest
}

// MinBookableDate calendar date of MinBookableInstant
func MinBookableDate(settings *domain.CalendarSettings, now time.Time) time.Time {
	return civilDate(MinBookableInstant(settings, now))
}

// slotInstant момент начала слота: дата date в часовом поясе loc, minutes от полуночи
func slotInstant(date time.Time, minutes int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}

// dayEndsBefore true, если дата целиком раньше минимального момента
func dayEndsBefore(date time.Time, earliest time.Time) bool {
	y, m, d := date.Date()
	nextMidnight := time.Date(y, m, d+1, 0, 0, 0, 0, earliest.Location())
	return !nextMidnight.After(earliest)
}
