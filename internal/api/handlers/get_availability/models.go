package get_availability

import (
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-FleetBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PerDate              map[string]DateAvailability `json:"perDate"`
	MinBookableDate      string                      `json:"minBookableDate"`
	AdvanceBookingWindow int                         `json:"advanceBookingWindow"`
	AdvanceBookingUnit   string                      `json:"advanceBookingUnit"`
}

// DateAvailability доступность одной даты
type DateAvailability struct {
	HasSlots  bool   `json:"hasSlots"`
	SlotCount int    `json:"slotCount"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	perDate := make(map[string]DateAvailability, len(resp.Days))
	for _, day := range resp.Days {
		perDate[day.Date.Format(domain.DateFormat)] = DateAvailability{
			HasSlots:  day.IsBookable,
			SlotCount: day.SlotCount,
			Reason:    string(day.Reason),
		}
	}

	return &AvailabilityResponse{
		PerDate:              perDate,
		MinBookableDate:      resp.MinBookableDate.Format(domain.DateFormat),
		AdvanceBookingWindow: resp.AdvanceBookingWindow,
		AdvanceBookingUnit:   string(resp.AdvanceBookingUnit),
	}
}
