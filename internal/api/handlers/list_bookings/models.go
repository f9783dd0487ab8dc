package list_bookings

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
// Пустые параметры не участвуют в фильтрации
func ToServiceRequest(startDateStr, endDateStr, statusStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
