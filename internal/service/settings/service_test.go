package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-FleetBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	stored      *domain.CalendarSettings
	getErr      error
	createCalls int
	updateCalls int
	updateErr   error
	lastSaved   *domain.CalendarSettings
}

func (f *fakeRepo) Get(context.Context) (*domain.CalendarSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	s := *f.stored
	return &s, nil
}

func (f *fakeRepo) CreateDefault(context.Context) (*domain.CalendarSettings, error) {
	f.createCalls++
	s := domain.DefaultCalendarSettings()
	f.stored = &s
	return &s, nil
}

func (f *fakeRepo) Update(_ context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	saved := *s
	f.stored = &saved
	f.lastSaved = &saved
	return &saved, nil
}

func TestService_Load_CreatesDefaultsOnFirstRead(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	s, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, domain.DefaultMaxBookingsPerWeek, s.MaxBookingsPerWeek)

	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createCalls)
}

func TestService_Load_StorageError(t *testing.T) {
	repo := &fakeRepo{getErr: errors.New("connection reset")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, 0, repo.createCalls)
}

func TestService_Update_PartialPatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		SlotBufferMinutes:    ptr.Ptr(15),
		WorkingDays:          []int{1, 2, 3, 4, 5, 6},
		AdvanceBookingUnit:   ptr.Ptr("days"),
		AdvanceBookingWindow: ptr.Ptr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.SlotBufferMinutes)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, resp.WorkingDays)
	assert.Equal(t, "days", resp.AdvanceBookingUnit)
	assert.Equal(t, "08:00", resp.StartTime)
	assert.Equal(t, time.Saturday, repo.lastSaved.WorkingDays[5])
}

func TestService_Update_RejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{name: "empty request", req: &models.UpdateSettingsRequest{}},
		{name: "slot longer than day", req: &models.UpdateSettingsRequest{
			StartTime:           ptr.Ptr("08:00"),
			EndTime:             ptr.Ptr("09:00"),
			SlotDurationMinutes: ptr.Ptr(120),
		}},
		{name: "no working days", req: &models.UpdateSettingsRequest{WorkingDays: []int{}}},
		{name: "end before start", req: &models.UpdateSettingsRequest{EndTime: ptr.Ptr("07:00")}},
		{name: "unknown unit", req: &models.UpdateSettingsRequest{AdvanceBookingUnit: ptr.Ptr("weeks")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo, nopLogger{})

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Equal(t, 0, repo.updateCalls)
		})
	}
}

func TestService_Update_StorageError(t *testing.T) {
	repo := &fakeRepo{updateErr: errors.New("disk full")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{MaxBookingsPerWeek: ptr.Ptr(10)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidConfiguration)
}
