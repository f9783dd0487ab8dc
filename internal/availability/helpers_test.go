package availability

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

var phoenix = time.FixedZone("UTC-7", -7*60*60)

var allDays = domain.WorkingDays{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func settingsAt(start, end types.TimeString, duration, buffer int) *domain.CalendarSettings {
	return &domain.CalendarSettings{
		ID:                   domain.SettingsID,
		MaxBookingsPerWeek:   20,
		StartTime:            start,
		EndTime:              end,
		SlotDurationMinutes:  duration,
		SlotBufferMinutes:    buffer,
		WorkingDays:          allDays,
		AdvanceBookingWindow: 0,
		AdvanceBookingUnit:   domain.AdvanceUnitHours,
	}
}

func booking(d time.Time, at types.TimeString, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ScheduledDate: d,
		ScheduledTime: at,
		Status:        status,
	}
}

func slotTimes(slots []domain.SlotCandidate) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Time)
	}
	return result
}
