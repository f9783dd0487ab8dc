package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	QueryByDateRange(ctx context.Context, from, to time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// SettingsLoader источник настроек календаря
type SettingsLoader interface {
	Load(ctx context.Context) (*domain.CalendarSettings, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
