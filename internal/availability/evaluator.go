package availability

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// DayAvailability availability of one date
type DayAvailability struct {
	Date           time.Time
	IsBookable     bool
	AvailableSlots []types.TimeString
	SlotCount      int
	Reason         Reason
}

// SlotVerdict result of checking a single requested slot
type SlotVerdict struct {
	Available bool
	Reason    Reason
}

// Evaluate computes availability for every date.
//
// bookings must contain the bookings of every week touched by dates (see LedgerWindow);
// inactive bookings are ignored. now carries the location of the service calendar.
// The function is pure: the same inputs always give the same result.
func Evaluate(
	settings *domain.CalendarSettings,
	bookings []*domain.Booking,
	now time.Time,
	dates []time.Time,
) []DayAvailability {
	l := newLedger(bookings, settings.SlotStep())
	earliest := MinBookableInstant(settings, now)

	result := make([]DayAvailability, 0, len(dates))
	for _, date := range dates {
		result = append(result, evaluateDate(settings, l, earliest, civilDate(date)))
	}
	return result
}

// EvaluateDate availability of a single date
func EvaluateDate(
	settings *domain.CalendarSettings,
	bookings []*domain.Booking,
	now time.Time,
	date time.Time,
) DayAvailability {
	return Evaluate(settings, bookings, now, []time.Time{date})[0]
}

func evaluateDate(settings *domain.CalendarSettings, l *ledger, earliest time.Time, date time.Time) DayAvailability {
	day := DayAvailability{
		Date:           date,
		AvailableSlots: []types.TimeString{},
	}

	// 1. Дата целиком раньше окна предварительной записи
	if dayEndsBefore(date, earliest) {
		day.Reason = ReasonAdvanceWindow
		return day
	}

	// 2. Нерабочий день
	if !settings.WorkingDays.Contains(date.Weekday()) {
		day.Reason = ReasonNonWorkingDay
		return day
	}

	// 3. Недельная квота считается по неделе этой даты
	if l.activeInWeek(date) >= settings.MaxBookingsPerWeek {
		day.Reason = ReasonWeeklyQuota
		return day
	}

	candidates := GenerateSlots(settings, date)
	if len(candidates) == 0 {
		day.Reason = ReasonNoSlots
		return day
	}

	// 4. Окно предварительной записи для слотов и пересечения с бронированиями
	occupied := settings.SlotStep()
	insideWindow := 0
	for _, slot := range candidates {
		if slotInstant(date, slot.StartMinutes, earliest.Location()).Before(earliest) {
			continue
		}
		insideWindow++

		if l.collides(date, slot.StartMinutes, slot.StartMinutes+occupied) {
			continue
		}
		day.AvailableSlots = append(day.AvailableSlots, slot.Time)
	}

	day.SlotCount = len(day.AvailableSlots)
	day.IsBookable = day.SlotCount > 0

	switch {
	case insideWindow == 0:
		day.Reason = ReasonAdvanceWindow
	case !day.IsBookable:
		day.Reason = ReasonFullyBooked
	}

	return day
}

// CheckSlot runs the same gates as Evaluate for one requested date and time
func CheckSlot(
	settings *domain.CalendarSettings,
	bookings []*domain.Booking,
	now time.Time,
	date time.Time,
	at types.TimeString,
) SlotVerdict {
	l := newLedger(bookings, settings.SlotStep())
	earliest := MinBookableInstant(settings, now)
	date = civilDate(date)

	start, err := at.Minutes()
	if err != nil {
		return SlotVerdict{Reason: ReasonNotASlot}
	}

	if slotInstant(date, start, earliest.Location()).Before(earliest) {
		return SlotVerdict{Reason: ReasonAdvanceWindow}
	}

	if !settings.WorkingDays.Contains(date.Weekday()) {
		return SlotVerdict{Reason: ReasonNonWorkingDay}
	}

	if l.activeInWeek(date) >= settings.MaxBookingsPerWeek {
		return SlotVerdict{Reason: ReasonWeeklyQuota}
	}

	if !isGeneratedSlot(settings, date, start) {
		return SlotVerdict{Reason: ReasonNotASlot}
	}

	if l.collides(date, start, start+settings.SlotStep()) {
		return SlotVerdict{Reason: ReasonCollision}
	}

	return SlotVerdict{Available: true}
}

func isGeneratedSlot(settings *domain.CalendarSettings, date time.Time, start int) bool {
	for _, slot := range GenerateSlots(settings, date) {
		if slot.StartMinutes == start {
			return true
		}
	}
	return false
}
