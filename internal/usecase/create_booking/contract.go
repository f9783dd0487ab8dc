package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	QueryByDateRange(ctx context.Context, from, to time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SettingsLoader источник настроек календаря
type SettingsLoader interface {
	Load(ctx context.Context) (*domain.CalendarSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// DateLocker блокировка дня на время проверки и записи
type DateLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Unlock(ctx context.Context, key string, token string) error
}

// Notifier уведомление о созданном бронировании (best-effort)
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, booking *domain.Booking)
}

// Metrics счетчик исходов попыток бронирования
type Metrics interface {
	RecordBookingAttempt(outcome string)
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
