package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

// UseCase use case для получения доступности на диапазон дат
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

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: range %s..%s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки календаря
	settings, err := uc.settingsLoader.Load(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: load settings: %v", ErrStorageUnavailable, err)
	}

	// 4. Бронирования всех недель, которые задевает диапазон
	from, to := availability.LedgerWindow(req.StartDate, req.EndDate)
	bookings, err := uc.bookingRepo.QueryByDateRange(ctx, from, to, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: query bookings: %v", ErrStorageUnavailable, err)
	}

	// 5. Считаем доступность по каждому дню
	days := availability.Evaluate(settings, bookings, now, availability.DateRange(req.StartDate, req.EndDate))

	bookable := 0
	for _, day := range days {
		if day.IsBookable {
			bookable++
		}
	}
	uc.logger.Info("GetAvailability: %d of %d days bookable", bookable, len(days))

	return &Response{
		Days:                 days,
		MinBookableDate:      availability.MinBookableDate(settings, now),
		AdvanceBookingWindow: settings.AdvanceBookingWindow,
		AdvanceBookingUnit:   settings.AdvanceBookingUnit,
	}, nil
}
