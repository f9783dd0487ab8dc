package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/clock"
)

// 2024-01-01 понедельник, 10:00 в UTC-7
var now = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.FixedZone("UTC-7", -7*60*60))

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	from, to time.Time
}

func (f *fakeRepo) QueryByDateRange(_ context.Context, from, to time.Time, _ []domain.BookingStatus) ([]*domain.Booking, error) {
	f.from, f.to = from, to
	return f.bookings, f.err
}

type fakeSettings struct {
	settings *domain.CalendarSettings
	err      error
}

func (f *fakeSettings) Load(context.Context) (*domain.CalendarSettings, error) {
	return f.settings, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(repo *fakeRepo, settings *domain.CalendarSettings) *UseCase {
	return NewUseCase(repo, &fakeSettings{settings: settings}, clock.Fixed{T: now}, nopLogger{})
}

func TestUseCase_Execute_Range(t *testing.T) {
	s := domain.DefaultCalendarSettings()
	s.StartTime, s.EndTime = "06:00", "08:00"
	s.SlotDurationMinutes = 30
	s.AdvanceBookingWindow = 1
	s.AdvanceBookingUnit = domain.AdvanceUnitDays
	s.MaxBookingsPerWeek = 1

	// Неделя 2024-01-07..2024-01-13 закрыта квотой
	repo := &fakeRepo{bookings: []*domain.Booking{
		{ScheduledDate: day(2024, time.January, 12), ScheduledTime: "06:00", Status: domain.StatusPending},
	}}
	uc := newUseCase(repo, &s)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: day(2024, time.January, 1),
		EndDate:   day(2024, time.January, 9),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 9)

	reasons := make([]availability.Reason, 0, len(resp.Days))
	for _, d := range resp.Days {
		reasons = append(reasons, d.Reason)
	}
	assert.Equal(t, []availability.Reason{
		availability.ReasonAdvanceWindow, // пн 01, раньше минимальной даты
		availability.ReasonNone,          // вт 02
		availability.ReasonNone,          // ср 03
		availability.ReasonNone,          // чт 04
		availability.ReasonNone,          // пт 05
		availability.ReasonNonWorkingDay, // сб 06
		availability.ReasonNonWorkingDay, // вс 07
		availability.ReasonWeeklyQuota,   // пн 08
		availability.ReasonWeeklyQuota,   // вт 09
	}, reasons)

	assert.Equal(t, 4, resp.Days[1].SlotCount)
	assert.Equal(t, day(2024, time.January, 2), resp.MinBookableDate)
	assert.Equal(t, 1, resp.AdvanceBookingWindow)
	assert.Equal(t, domain.AdvanceUnitDays, resp.AdvanceBookingUnit)

	// Загружаются все задетые недели целиком
	assert.Equal(t, day(2023, time.December, 31), repo.from)
	assert.Equal(t, day(2024, time.January, 13), repo.to)
}

func TestUseCase_Execute_InvalidRange(t *testing.T) {
	s := domain.DefaultCalendarSettings()
	uc := newUseCase(&fakeRepo{}, &s)

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing dates", &Request{}},
		{"end before start", &Request{StartDate: day(2024, time.January, 5), EndDate: day(2024, time.January, 4)}},
		{"too long", &Request{StartDate: day(2024, time.January, 1), EndDate: day(2024, time.April, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_MaxRangeAccepted(t *testing.T) {
	s := domain.DefaultCalendarSettings()
	uc := newUseCase(&fakeRepo{}, &s)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: day(2024, time.January, 1),
		EndDate:   day(2024, time.April, 1),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Days, MaxRangeDays)
}

func TestUseCase_Execute_HugeRangeRejectedBeforeQuery(t *testing.T) {
	s := domain.DefaultCalendarSettings()
	repo := &fakeRepo{}
	uc := newUseCase(repo, &s)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: day(2, time.January, 1),
		EndDate:   day(9999, time.December, 31),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, repo.from.IsZero(), "storage must not be queried")
}

func TestUseCase_Execute_StorageErrorIsNotEmptyAvailability(t *testing.T) {
	s := domain.DefaultCalendarSettings()
	uc := newUseCase(&fakeRepo{err: errors.New("connection refused")}, &s)

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: day(2024, time.January, 1),
		EndDate:   day(2024, time.January, 2),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
