package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-FleetBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ScheduledDate       string  `json:"scheduledDate"` // "2025-10-15"
	ScheduledTime       string  `json:"scheduledTime"` // "10:00"
	CustomerName        string  `json:"customerName"`
	CustomerEmail       string  `json:"customerEmail"`
	CustomerPhone       *string `json:"customerPhone,omitempty"`
	VehicleUnitNumber   *string `json:"vehicleUnitNumber,omitempty"`
	VehicleMake         *string `json:"vehicleMake,omitempty"`
	VehicleModel        *string `json:"vehicleModel,omitempty"`
	VehicleLicensePlate *string `json:"vehicleLicensePlate,omitempty"`
	ServiceType         string  `json:"serviceType"`
	Notes               *string `json:"notes,omitempty"`
}

// SlotUnavailableResponse тело ответа 409
type SlotUnavailableResponse struct {
	Error          string   `json:"error"` // "SlotUnavailable" | "QuotaExceeded"
	Reason         string   `json:"reason"`
	Message        string   `json:"message"`
	AvailableSlots []string `json:"availableSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(confirmed bool) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, errInvalidDate
	}

	at, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		Date:                date,
		Time:                at,
		CustomerName:        r.CustomerName,
		CustomerEmail:       r.CustomerEmail,
		CustomerPhone:       r.CustomerPhone,
		VehicleUnitNumber:   r.VehicleUnitNumber,
		VehicleMake:         r.VehicleMake,
		VehicleModel:        r.VehicleModel,
		VehicleLicensePlate: r.VehicleLicensePlate,
		ServiceType:         r.ServiceType,
		Notes:               r.Notes,
		Confirmed:           confirmed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}

func fromSlotUnavailable(err *createBooking.SlotUnavailableError, message string) *SlotUnavailableResponse {
	code := "SlotUnavailable"
	if errors.Is(err, createBooking.ErrQuotaExceeded) {
		code = "QuotaExceeded"
	}

	slots := make([]string, 0, len(err.AvailableSlots))
	for _, s := range err.AvailableSlots {
		slots = append(slots, s.String())
	}

	return &SlotUnavailableResponse{
		Error:          code,
		Reason:         string(err.Reason),
		Message:        message,
		AvailableSlots: slots,
	}
}
