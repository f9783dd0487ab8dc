package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo    BookingRepository
	settingsLoader SettingsLoader
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsLoader SettingsLoader,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		settingsLoader: settingsLoader,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки календаря
	settings, err := uc.settingsLoader.Load(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: load settings: %v", ErrStorageUnavailable, err)
	}

	// 4. Активные бронирования всей недели (нужны для квоты)
	weekStart, weekEnd := availability.WeekBounds(req.Date)
	bookings, err := uc.bookingRepo.QueryByDateRange(ctx, weekStart, weekEnd, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: query bookings: %v", ErrStorageUnavailable, err)
	}

	// 5. Считаем доступность
	day := availability.EvaluateDate(settings, bookings, now, req.Date)

	uc.logger.Info("GetAvailableSlots: date=%s, slots=%d, reason=%q",
		day.Date.Format(domain.DateFormat), day.SlotCount, day.Reason)

	return &Response{
		Date:           day.Date,
		AvailableSlots: day.AvailableSlots,
		Reason:         day.Reason,
	}, nil
}
