package get_availability

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// MaxRangeDays максимальная длина запрашиваемого диапазона (включительно)
const MaxRangeDays = 92

// Request модель запроса доступности на диапазон дат
type Request struct {
	StartDate time.Time
	EndDate   time.Time
}

// Response модель ответа с доступностью по дням
type Response struct {
	Days                 []availability.DayAvailability
	MinBookableDate      time.Time
	AdvanceBookingWindow int
	AdvanceBookingUnit   domain.AdvanceUnit
}
