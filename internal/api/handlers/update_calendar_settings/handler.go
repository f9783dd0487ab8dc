package update_calendar_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidConfiguration = "некорректные настройки календаря"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings/calendar
// Обновляются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/calendar - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidConfiguration):
			h.logger.Warn("PUT /settings/calendar - Invalid configuration: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidConfiguration+": "+err.Error())

		case errors.Is(err, settings.ErrStorageUnavailable):
			h.logger.Error("PUT /settings/calendar - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /settings/calendar - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings/calendar - Settings updated successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
