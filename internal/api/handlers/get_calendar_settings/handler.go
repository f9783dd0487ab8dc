package get_calendar_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings"
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

// Handle GET /api/v1/settings/calendar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, settings.ErrStorageUnavailable) {
			h.logger.Error("GET /settings/calendar - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /settings/calendar - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settings/calendar - Settings retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
