package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// ValidateSettings checks that the settings are well formed and produce at least one slot
// on at least one working day. Violations wrap ErrInvalidConfiguration.
func ValidateSettings(settings *domain.CalendarSettings) error {
	if settings.MaxBookingsPerWeek < 0 || settings.MaxBookingsPerWeek > domain.MaxBookingsPerWeekLimit {
		return fmt.Errorf("%w: maxBookingsPerWeek must be between 0 and %d",
			ErrInvalidConfiguration, domain.MaxBookingsPerWeekLimit)
	}

	if err := settings.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidConfiguration, err)
	}
	if err := settings.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidConfiguration, err)
	}
	if !settings.StartTime.IsBefore(settings.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidConfiguration)
	}

	if settings.SlotDurationMinutes < domain.MinSlotDurationMinutes || settings.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidConfiguration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if settings.SlotBufferMinutes < 0 || settings.SlotBufferMinutes > domain.MaxSlotBufferMinutes {
		return fmt.Errorf("%w: slotBufferMinutes must be between 0 and %d",
			ErrInvalidConfiguration, domain.MaxSlotBufferMinutes)
	}

	if !settings.AdvanceBookingUnit.IsValid() {
		return fmt.Errorf("%w: advanceBookingUnit must be %q or %q",
			ErrInvalidConfiguration, domain.AdvanceUnitHours, domain.AdvanceUnitDays)
	}
	maxWindow := domain.MaxAdvanceWindowHours
	if settings.AdvanceBookingUnit == domain.AdvanceUnitDays {
		maxWindow = domain.MaxAdvanceWindowDays
	}
	if settings.AdvanceBookingWindow < 0 || settings.AdvanceBookingWindow > maxWindow {
		return fmt.Errorf("%w: advanceBookingWindow must be between 0 and %d %s",
			ErrInvalidConfiguration, maxWindow, settings.AdvanceBookingUnit)
	}

	if len(settings.WorkingDays) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidConfiguration)
	}
	seen := make(map[time.Weekday]bool, len(settings.WorkingDays))
	for _, day := range settings.WorkingDays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: working day %d is out of range 0-6", ErrInvalidConfiguration, day)
		}
		if seen[day] {
			return fmt.Errorf("%w: working day %d is duplicated", ErrInvalidConfiguration, day)
		}
		seen[day] = true
	}

	// Все рабочие дни генерируют одинаковую сетку, достаточно проверить одну дату
	if len(GenerateSlots(settings, nextWeekday(settings.WorkingDays[0]))) == 0 {
		return fmt.Errorf("%w: slot of %d minutes does not fit between %s and %s",
			ErrInvalidConfiguration, settings.SlotDurationMinutes, settings.StartTime, settings.EndTime)
	}

	return nil
}

// nextWeekday любая дата с заданным днем недели (неделя 2023-01-01 начинается с воскресенья)
func nextWeekday(day time.Weekday) time.Time {
	return time.Date(2023, time.January, 1+int(day), 0, 0, 0, 0, time.UTC)
}
