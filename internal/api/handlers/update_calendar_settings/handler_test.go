package update_calendar_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings/models"
)

type fakeService struct {
	req *models.UpdateSettingsRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SettingsResponse{MaxBookingsPerWeek: *req.MaxBookingsPerWeek}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodPut, "/api/v1/settings/calendar", strings.NewReader(body)))
	return w
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, `{"maxBookingsPerWeek": 5, "workingDays": [1, 2, 3]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.req.MaxBookingsPerWeek)
	assert.Equal(t, 5, *svc.req.MaxBookingsPerWeek)
	assert.Equal(t, []int{1, 2, 3}, svc.req.WorkingDays)
	assert.Nil(t, svc.req.StartTime)
}

func TestHandler_InvalidConfigurationIs422(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: no working days", settings.ErrInvalidConfiguration)}

	w := serve(svc, `{"maxBookingsPerWeek": 5, "workingDays": []}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"unknown": true}`).Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		serve(&fakeService{err: fmt.Errorf("%w: db", settings.ErrStorageUnavailable)}, `{"maxBookingsPerWeek": 5}`).Code)
}
