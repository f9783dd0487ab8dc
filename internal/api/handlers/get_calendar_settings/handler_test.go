package get_calendar_settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings/models"
)

type fakeService struct {
	resp *models.SettingsResponse
	err  error
}

func (f *fakeService) Get(context.Context) (*models.SettingsResponse, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/settings/calendar", nil))
	return w
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{resp: &models.SettingsResponse{
		MaxBookingsPerWeek:   20,
		StartTime:            "08:00",
		EndTime:              "17:00",
		SlotDurationMinutes:  60,
		WorkingDays:          []int{1, 2, 3, 4, 5},
		AdvanceBookingWindow: 24,
		AdvanceBookingUnit:   "hours",
	}}

	w := serve(svc)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "08:00", body["startTime"])
	assert.Equal(t, "hours", body["advanceBookingUnit"])
	assert.EqualValues(t, 20, body["maxBookingsPerWeek"])
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable,
		serve(&fakeService{err: fmt.Errorf("%w: db down", settings.ErrStorageUnavailable)}).Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&fakeService{err: errors.New("boom")}).Code)
}
