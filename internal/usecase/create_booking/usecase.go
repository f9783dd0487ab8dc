package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FleetBookingService/pkg/datelock"
	"github.com/m04kA/SMC-FleetBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FleetBookingService/pkg/ptr"
	"github.com/m04kA/SMC-FleetBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

const (
	lockScope = "booking"
	lockTTL   = 10 * time.Second

	defaultLockWait   = 3 * time.Second
	lockRetryMinDelay = 20 * time.Millisecond
	lockRetryMaxDelay = 250 * time.Millisecond
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	settingsLoader SettingsLoader
	txManager      TransactionManager
	locker         DateLocker
	notifier       Notifier
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger

	// lockWait сколько ждать освобождения дня, дедлайн запроса может сократить ожидание
	lockWait time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsLoader SettingsLoader,
	txManager TransactionManager,
	locker DateLocker,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		settingsLoader: settingsLoader,
		txManager:      txManager,
		locker:         locker,
		notifier:       notifier,
		metrics:        metrics,
		timeProvider:   timeProvider,
		logger:         logger,
		lockWait:       defaultLockWait,
	}
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBookingAttempt(metrics.OutcomeInvalid)
		return nil, err
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	uc.logger.Info("CreateBooking: date=%s, time=%s, service=%q",
		date.Format(domain.DateFormat), req.Time, req.ServiceType)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Блокируем день
	key := datelock.Key(lockScope, date)
	token, ok, err := uc.acquireLock(ctx, key)
	switch {
	case err != nil:
		// Блокировка дополнительная, без нее гарантию дают транзакция и уникальный индекс
		uc.logger.Warn("CreateBooking: failed to acquire lock %s: %v", key, err)
	case !ok:
		uc.logger.Warn("CreateBooking: date %s is still locked by another request", date.Format(domain.DateFormat))
		uc.metrics.RecordBookingAttempt(metrics.OutcomeBusy)
		return nil, ErrBusy
	default:
		defer func() {
			if err := uc.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
				uc.logger.Warn("CreateBooking: failed to release lock %s: %v", key, err)
			}
		}()
	}

	var created *domain.Booking

	// 4. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Настройки календаря
		settings, err := uc.settingsLoader.Load(txCtx)
		if err != nil {
			return fmt.Errorf("%w: load settings: %w", ErrStorageUnavailable, err)
		}

		// 4.2. Активные бронирования недели (FOR UPDATE внутри транзакции)
		weekStart, weekEnd := availability.WeekBounds(date)
		bookings, err := uc.bookingRepo.QueryByDateRange(txCtx, weekStart, weekEnd, domain.ActiveStatuses)
		if err != nil {
			return fmt.Errorf("%w: query bookings: %w", ErrStorageUnavailable, err)
		}

		// 4.3. Повторная проверка слота
		verdict := availability.CheckSlot(settings, bookings, now, date, req.Time)
		if !verdict.Available {
			day := availability.EvaluateDate(settings, bookings, now, date)
			return &SlotUnavailableError{
				Reason:         verdict.Reason,
				Date:           date,
				Time:           req.Time,
				AvailableSlots: day.AvailableSlots,
			}
		}

		// 4.4. Создаем бронирование
		booking := newBooking(req, date)
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: create booking: %w", ErrStorageUnavailable, err)
		}

		return nil
	})

	// 5. Разбираем результат
	if err != nil {
		return nil, uc.handleError(ctx, req, date, now, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", created.ID, created.Status)
	uc.metrics.RecordBookingAttempt(metrics.OutcomeCreated)

	// 6. Уведомление после коммита
	uc.notifier.NotifyBookingCreated(ctx, created)

	return &Response{Booking: created}, nil
}

// acquireLock повторяет попытки захвата дня с растущей паузой
// !ok только когда истекло ожидание lockWait или контекст запроса
func (uc *UseCase) acquireLock(ctx context.Context, key string) (string, bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, uc.lockWait)
	defer cancel()

	delay := lockRetryMinDelay
	for {
		token, ok, err := uc.locker.Lock(ctx, key, lockTTL)
		if err != nil || ok {
			return token, ok, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return "", false, nil
		case <-timer.C:
		}
		delay = min(delay*2, lockRetryMaxDelay)
	}
}

func (uc *UseCase) handleError(ctx context.Context, req *Request, date, now time.Time, err error) error {
	var unavailable *SlotUnavailableError

	switch {
	case errors.As(err, &unavailable):
		uc.logger.Warn("CreateBooking: %v", unavailable)
		uc.recordUnavailable(unavailable)
		return unavailable

	case errors.Is(err, bookingRepo.ErrSlotTaken):
		// Транзакция уже откачена, альтернативы читаем заново
		uc.logger.Warn("CreateBooking: slot %s %s taken concurrently", date.Format(domain.DateFormat), req.Time)
		unavailable = &SlotUnavailableError{
			Reason:         availability.ReasonCollision,
			Date:           date,
			Time:           req.Time,
			AvailableSlots: uc.alternatives(ctx, date, now),
		}
		uc.recordUnavailable(unavailable)
		return unavailable

	case errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
		uc.metrics.RecordBookingAttempt(metrics.OutcomeBusy)
		return fmt.Errorf("%w: %v", ErrBusy, err)

	case errors.Is(err, ErrStorageUnavailable):
		uc.logger.Error("CreateBooking: %v", err)
		uc.metrics.RecordBookingAttempt(metrics.OutcomeError)
		return err

	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		uc.metrics.RecordBookingAttempt(metrics.OutcomeError)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}

// alternatives свободные слоты даты; при ошибке чтения пустой список
func (uc *UseCase) alternatives(ctx context.Context, date, now time.Time) []types.TimeString {
	settings, err := uc.settingsLoader.Load(ctx)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to load settings for alternatives: %v", err)
		return []types.TimeString{}
	}

	weekStart, weekEnd := availability.WeekBounds(date)
	bookings, err := uc.bookingRepo.QueryByDateRange(ctx, weekStart, weekEnd, domain.ActiveStatuses)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to query bookings for alternatives: %v", err)
		return []types.TimeString{}
	}

	return availability.EvaluateDate(settings, bookings, now, date).AvailableSlots
}

func (uc *UseCase) recordUnavailable(err *SlotUnavailableError) {
	if errors.Is(err, ErrQuotaExceeded) {
		uc.metrics.RecordBookingAttempt(metrics.OutcomeQuotaExceeded)
		return
	}
	uc.metrics.RecordBookingAttempt(metrics.OutcomeSlotUnavailable)
}

func newBooking(req *Request, date time.Time) *domain.Booking {
	status := domain.StatusPending
	if req.Confirmed {
		status = domain.StatusConfirmed
	}

	return &domain.Booking{
		ScheduledDate:       date,
		ScheduledTime:       req.Time,
		Status:              status,
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:       optional(req.CustomerPhone),
		VehicleUnitNumber:   optional(req.VehicleUnitNumber),
		VehicleMake:         optional(req.VehicleMake),
		VehicleModel:        optional(req.VehicleModel),
		VehicleLicensePlate: optional(req.VehicleLicensePlate),
		ServiceType:         strings.TrimSpace(req.ServiceType),
		Notes:               optional(req.Notes),
	}
}

// optional пустые строки хранятся как NULL
func optional(p *string) *string {
	v := strings.TrimSpace(ptr.Deref(p, ""))
	if v == "" {
		return nil
	}
	return ptr.Ptr(v)
}
