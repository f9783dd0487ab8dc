package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date           time.Time           // Дата, на которую запрашивались слоты
	AvailableSlots []types.TimeString  // Свободные слоты по возрастанию
	Reason         availability.Reason // Почему слотов нет (пусто, если есть)
}
