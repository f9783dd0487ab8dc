package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotUnavailable возвращается, когда слот не прошел повторную проверку при записи
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrQuotaExceeded недельная квота исчерпана, частный случай ErrSlotUnavailable
	ErrQuotaExceeded = fmt.Errorf("%w: weekly quota exceeded", ErrSlotUnavailable)

	// ErrBusy день заблокирован параллельной записью, запрос можно повторить
	ErrBusy = errors.New("create_booking: date is busy, retry later")

	// ErrStorageUnavailable возвращается при ошибках хранилища или транзакции
	ErrStorageUnavailable = errors.New("create_booking: storage unavailable")
)

// SlotUnavailableError отказ в записи с причиной и альтернативными слотами на ту же дату
type SlotUnavailableError struct {
	Reason         availability.Reason
	Date           time.Time
	Time           types.TimeString
	AvailableSlots []types.TimeString
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("%v: %s %s (%s)", e.Unwrap(), e.Date.Format(domain.DateFormat), e.Time, e.Reason)
}

// Unwrap ErrQuotaExceeded для weekly_quota, иначе ErrSlotUnavailable
func (e *SlotUnavailableError) Unwrap() error {
	if e.Reason == availability.ReasonWeeklyQuota {
		return ErrQuotaExceeded
	}
	return ErrSlotUnavailable
}
