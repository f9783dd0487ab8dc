package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
)

// validateRequest валидирует диапазон дат
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	// размер считаем до построения диапазона
	if days := availability.DaysInRange(req.StartDate, req.EndDate); days > MaxRangeDays {
		return fmt.Errorf("%w: range must not exceed %d days, got %d", ErrInvalidInput, MaxRangeDays, days)
	}

	return nil
}
