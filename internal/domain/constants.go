package domain

import "github.com/m04kA/SMC-FleetBookingService/pkg/types"

// SettingsID идентификатор единственной строки настроек календаря
const SettingsID = 1

// Default calendar values
const (
	DefaultMaxBookingsPerWeek                    = 20
	DefaultStartTime            types.TimeString = "08:00"
	DefaultEndTime              types.TimeString = "17:00"
	DefaultSlotDurationMinutes                   = 60
	DefaultSlotBufferMinutes                     = 0
	DefaultAdvanceBookingWindow                  = 24
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 5
	MaxSlotDurationMinutes  = 720 // 12 hours
	MaxSlotBufferMinutes    = 240
	MaxBookingsPerWeekLimit = 1000
	MaxAdvanceWindowHours   = 24 * 90
	MaxAdvanceWindowDays    = 365
	MaxNotesLength          = 1000
	MaxCustomerNameLength   = 200
	MaxServiceTypeLength    = 100
	MaxVehicleFieldLength   = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают слот и учитываются в недельной квоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}
