package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	createBooking "github.com/m04kA/SMC-FleetBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgBusy               = "слот сейчас бронируется другим запросом, повторите попытку"
	msgQuotaExceeded      = "лимит бронирований на эту неделю исчерпан"
	msgSlotUnavailable    = "выбранный временной слот недоступен"
	msgAdvanceWindow      = "слот находится слишком близко к текущему времени"
	msgNonWorkingDay      = "выбранный день нерабочий"
	msgNotASlot           = "выбранное время не совпадает с сеткой слотов"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Администратор создает бронирование сразу подтвержденным
	useCaseReq, err := req.ToUseCaseRequest(middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var unavailable *createBooking.SlotUnavailableError

		switch {
		case errors.As(err, &unavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: date=%s, time=%s, reason=%s",
				req.ScheduledDate, req.ScheduledTime, unavailable.Reason)
			handlers.RespondJSON(w, http.StatusConflict, fromSlotUnavailable(unavailable, messageFor(unavailable.Reason)))

		case errors.Is(err, createBooking.ErrBusy):
			h.logger.Warn("POST /bookings - Busy: date=%s, time=%s", req.ScheduledDate, req.ScheduledTime)
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusConflict, msgBusy)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())

		case errors.Is(err, createBooking.ErrStorageUnavailable):
			h.logger.Error("POST /bookings - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.ScheduledDate, req.ScheduledTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, status=%s",
		result.Booking.ID, result.Booking.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func messageFor(reason availability.Reason) string {
	switch reason {
	case availability.ReasonWeeklyQuota:
		return msgQuotaExceeded
	case availability.ReasonAdvanceWindow:
		return msgAdvanceWindow
	case availability.ReasonNonWorkingDay:
		return msgNonWorkingDay
	case availability.ReasonNotASlot:
		return msgNotASlot
	default:
		return msgSlotUnavailable
	}
}
