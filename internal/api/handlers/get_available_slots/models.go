package get_available_slots

import (
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-FleetBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
	Reason         string   `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
		Reason:         string(resp.Reason),
	}
}
