package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: time must be in HH:MM format", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must not exceed %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: customerEmail is invalid", ErrInvalidInput)
	}

	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		return fmt.Errorf("%w: serviceType is required", ErrInvalidInput)
	}
	if len(serviceType) > domain.MaxServiceTypeLength {
		return fmt.Errorf("%w: serviceType must not exceed %d characters", ErrInvalidInput, domain.MaxServiceTypeLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	optional := map[string]*string{
		"customerPhone":       req.CustomerPhone,
		"vehicleUnitNumber":   req.VehicleUnitNumber,
		"vehicleMake":         req.VehicleMake,
		"vehicleModel":        req.VehicleModel,
		"vehicleLicensePlate": req.VehicleLicensePlate,
	}
	for field, value := range optional {
		if value != nil && len(*value) > domain.MaxVehicleFieldLength {
			return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidInput, field, domain.MaxVehicleFieldLength)
		}
	}

	return nil
}
