package domain

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive returns true if a booking in this status occupies its slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

// Допустимые переходы статусов
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// Booking represents a fleet service appointment
type Booking struct {
	ID            int64
	ScheduledDate time.Time
	ScheduledTime types.TimeString
	Status        BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	VehicleUnitNumber   *string
	VehicleMake         *string
	VehicleModel        *string
	VehicleLicensePlate *string

	ServiceType string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanTransitionTo returns true if the booking may move to the given status
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DateKey returns the scheduled date formatted as YYYY-MM-DD
func (b *Booking) DateKey() string {
	return b.ScheduledDate.Format(DateFormat)
}

// BookingsFilter фильтр для списка бронирований (админка)
type BookingsFilter struct {
	StartDate *time.Time     // Начало периода включительно (nil - без ограничения)
	EndDate   *time.Time     // Конец периода включительно (nil - без ограничения)
	Status    *BookingStatus // Фильтр по статусу (опционально)
}
