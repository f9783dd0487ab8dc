package availability

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// GenerateSlots returns the ordered slot candidates of a date.
// The result is empty for non-working days and for windows too short for a single slot.
func GenerateSlots(settings *domain.CalendarSettings, date time.Time) []domain.SlotCandidate {
	if !settings.WorkingDays.Contains(date.Weekday()) {
		return []domain.SlotCandidate{}
	}

	startMinutes, err := settings.StartTime.Minutes()
	if err != nil {
		return []domain.SlotCandidate{}
	}
	endMinutes, err := settings.EndTime.Minutes()
	if err != nil {
		return []domain.SlotCandidate{}
	}

	duration := settings.SlotDurationMinutes
	step := settings.SlotStep()
	if duration <= 0 || step <= 0 {
		return []domain.SlotCandidate{}
	}

	day := civilDate(date)
	slots := make([]domain.SlotCandidate, 0, (endMinutes-startMinutes)/step+1)

	// Хвостовой слот, который не помещается целиком до конца дня, не выдается
	for current := startMinutes; current+duration <= endMinutes; current += step {
		ts, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			break
		}
		slots = append(slots, domain.SlotCandidate{
			Date:         day,
			Time:         ts,
			StartMinutes: current,
			EndMinutes:   current + duration,
		})
	}

	return slots
}

// civilDate отбрасывает время и часовой пояс: дата как полночь UTC
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInRange количество дат от start до end включительно, без построения самого диапазона
// Для диапазонов длиннее ~290 лет длительность насыщается, результат все равно больше 100000
func DaysInRange(start, end time.Time) int {
	from, to := civilDate(start), civilDate(end)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// DateRange возвращает все даты от start до end включительно
func DateRange(start, end time.Time) []time.Time {
	days := DaysInRange(start, end)
	if days == 0 {
		return []time.Time{}
	}

	from, to := civilDate(start), civilDate(end)
	dates := make([]time.Time, 0, days)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
