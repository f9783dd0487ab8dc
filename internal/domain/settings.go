package domain

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// AdvanceUnit unit of the advance booking window
type AdvanceUnit string

const (
	AdvanceUnitHours AdvanceUnit = "hours"
	AdvanceUnitDays  AdvanceUnit = "days"
)

// IsValid returns true for a known unit
func (u AdvanceUnit) IsValid() bool {
	return u == AdvanceUnitHours || u == AdvanceUnitDays
}

// WorkingDays set of weekdays on which the shop is open
type WorkingDays []time.Weekday

// Contains returns true if the weekday is a working day
func (w WorkingDays) Contains(day time.Weekday) bool {
	for _, d := range w {
		if d == day {
			return true
		}
	}
	return false
}

// CalendarSettings operating rules of the single service location
type CalendarSettings struct {
	ID                   int64
	MaxBookingsPerWeek   int
	StartTime            types.TimeString
	EndTime              types.TimeString
	SlotDurationMinutes  int
	SlotBufferMinutes    int
	WorkingDays          WorkingDays
	AdvanceBookingWindow int
	AdvanceBookingUnit   AdvanceUnit
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultCalendarSettings returns settings used when none are stored yet
func DefaultCalendarSettings() CalendarSettings {
	return CalendarSettings{
		ID:                   SettingsID,
		MaxBookingsPerWeek:   DefaultMaxBookingsPerWeek,
		StartTime:            DefaultStartTime,
		EndTime:              DefaultEndTime,
		SlotDurationMinutes:  DefaultSlotDurationMinutes,
		SlotBufferMinutes:    DefaultSlotBufferMinutes,
		WorkingDays:          WorkingDays{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		AdvanceBookingWindow: DefaultAdvanceBookingWindow,
		AdvanceBookingUnit:   AdvanceUnitHours,
	}
}

// SlotStep distance between two consecutive slot starts in minutes
func (s *CalendarSettings) SlotStep() int {
	return s.SlotDurationMinutes + s.SlotBufferMinutes
}
