package create_booking

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date time.Time        // Дата бронирования (без времени)
	Time types.TimeString // Время начала слота HH:MM

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string

	VehicleUnitNumber   *string
	VehicleMake         *string
	VehicleModel        *string
	VehicleLicensePlate *string

	ServiceType string
	Notes       *string

	// Confirmed создает бронирование сразу в статусе confirmed (администратор)
	Confirmed bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
