package notifier

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

const eventBookingCreated = "booking.created"

// BookingEvent тело webhook о событии бронирования
type BookingEvent struct {
	Event         string    `json:"event"`
	BookingID     int64     `json:"booking_id"`
	ScheduledDate string    `json:"scheduled_date"`
	ScheduledTime string    `json:"scheduled_time"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone *string   `json:"customer_phone,omitempty"`
	VehicleUnit   *string   `json:"vehicle_unit_number,omitempty"`
	ServiceType   string    `json:"service_type"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newBookingEvent(event string, b *domain.Booking) BookingEvent {
	return BookingEvent{
		Event:         event,
		BookingID:     b.ID,
		ScheduledDate: b.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime: b.ScheduledTime.String(),
		Status:        string(b.Status),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		VehicleUnit:   b.VehicleUnitNumber,
		ServiceType:   b.ServiceType,
		OccurredAt:    b.CreatedAt,
	}
}
