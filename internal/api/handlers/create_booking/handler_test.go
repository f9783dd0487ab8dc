package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-FleetBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

const validBody = `{
	"scheduledDate": "2024-01-02",
	"scheduledTime": "08:00",
	"customerName": "Jane Driver",
	"customerEmail": "jane@fleet.example",
	"vehicleUnitNumber": "T-101",
	"serviceType": "oil change"
}`

type fakeUseCase struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{Booking: &domain.Booking{
		ID:            5,
		ScheduledDate: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "08:00",
		Status:        domain.StatusPending,
		CustomerName:  "Jane Driver",
		CustomerEmail: "jane@fleet.example",
		ServiceType:   "oil change",
	}}}
	h := NewHandler(uc, nopLogger{})

	w := serve(http.HandlerFunc(h.Handle), validBody, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "2024-01-02", body["scheduledDate"])
	assert.Equal(t, "08:00", body["scheduledTime"])
	assert.Equal(t, "pending", body["status"])

	assert.False(t, uc.req.Confirmed)
	assert.Equal(t, types.TimeString("08:00"), uc.req.Time)
	require.NotNil(t, uc.req.VehicleUnitNumber)
	assert.Equal(t, "T-101", *uc.req.VehicleUnitNumber)
}

func TestHandler_AdminCreatesConfirmed(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{Booking: &domain.Booking{ID: 1, Status: domain.StatusConfirmed}}}
	h := middleware.DetectAdmin("secret")(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))

	w := serve(h, validBody, map[string]string{middleware.HeaderAdminToken: "secret"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, uc.req.Confirmed)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown field", `{"fleetId": 1}`},
		{"bad date", strings.Replace(validBody, "2024-01-02", "02.01.2024", 1)},
		{"bad time", strings.Replace(validBody, `"08:00"`, `"8am"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := serve(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle), tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.req)
		})
	}
}

func TestHandler_SlotUnavailable(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.SlotUnavailableError{
		Reason:         availability.ReasonCollision,
		Date:           time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		Time:           "08:00",
		AvailableSlots: []types.TimeString{"09:00", "10:00"},
	}}

	w := serve(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle), validBody, nil)

	require.Equal(t, http.StatusConflict, w.Code)
	var body SlotUnavailableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SlotUnavailable", body.Error)
	assert.Equal(t, "collision", body.Reason)
	assert.Equal(t, msgSlotUnavailable, body.Message)
	assert.Equal(t, []string{"09:00", "10:00"}, body.AvailableSlots)
}

func TestHandler_QuotaExceeded(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.SlotUnavailableError{
		Reason:         availability.ReasonWeeklyQuota,
		AvailableSlots: []types.TimeString{},
	}}

	w := serve(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle), validBody, nil)

	require.Equal(t, http.StatusConflict, w.Code)
	var body SlotUnavailableResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "QuotaExceeded", body.Error)
	assert.Equal(t, "weekly_quota", body.Reason)
	assert.NotNil(t, body.AvailableSlots)
	assert.Empty(t, body.AvailableSlots)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"busy", createBooking.ErrBusy, http.StatusConflict},
		{"invalid input", fmt.Errorf("%w: customerEmail is invalid", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{"storage", fmt.Errorf("%w: query bookings", createBooking.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			w := serve(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle), validBody, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
