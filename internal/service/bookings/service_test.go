package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FleetBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTx struct{ calls int }

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fakeRepo struct {
	bookings   map[int64]*domain.Booking
	listErr    error
	lastFilter domain.BookingsFilter
	// afterGet имитирует конкурентное изменение между чтением и обновлением
	afterGet func()
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	if f.afterGet != nil {
		f.afterGet()
	}
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	b.Status = to
	return nil
}

func newService(bookings ...*domain.Booking) (*Service, *fakeRepo) {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return NewService(repo, &inlineTx{}, nopLogger{}), repo
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newService(&domain.Booking{
		ID:            1,
		ScheduledDate: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "07:00",
		Status:        domain.StatusPending,
		CustomerName:  "Jane Driver",
	})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", resp.ScheduledDate)
	assert.Equal(t, "07:00", resp.ScheduledTime)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	svc, repo := newService(&domain.Booking{ID: 1, Status: domain.StatusConfirmed})
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		StartDate: &start,
		Status:    ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
}

func TestService_List_Errors(t *testing.T) {
	svc, repo := newService()

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	start := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("timeout")
	_, err = svc.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{name: "confirm pending", from: domain.StatusPending, to: "confirmed"},
		{name: "start confirmed", from: domain.StatusConfirmed, to: "in_progress"},
		{name: "complete in progress", from: domain.StatusInProgress, to: "completed"},
		{name: "cancel in progress", from: domain.StatusInProgress, to: "cancelled"},
		{name: "skip confirmation", from: domain.StatusPending, to: "in_progress", wantErr: ErrInvalidTransition},
		{name: "reopen cancelled", from: domain.StatusCancelled, to: "pending", wantErr: ErrInvalidTransition},
		{name: "cancel completed", from: domain.StatusCompleted, to: "cancelled", wantErr: ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "archived", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(&domain.Booking{ID: 9, Status: tt.from})

			resp, err := svc.UpdateStatus(context.Background(), 9, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.bookings[9].Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.BookingStatus(tt.to), repo.bookings[9].Status)
		})
	}
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateStatus_StatusChangedAfterRead(t *testing.T) {
	svc, repo := newService(&domain.Booking{ID: 7, Status: domain.StatusPending})
	repo.afterGet = func() {
		repo.bookings[7].Status = domain.StatusCancelled
	}

	_, err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[7].Status)
}

func TestService_UpdateStatus_StorageError(t *testing.T) {
	svc, _ := newService(&domain.Booking{ID: 3, Status: domain.StatusPending})
	svc.bookingRepo = &failingUpdateRepo{fakeRepo: svc.bookingRepo.(*fakeRepo)}

	_, err := svc.UpdateStatus(context.Background(), 3, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

type failingUpdateRepo struct {
	*fakeRepo
}

func (f *failingUpdateRepo) UpdateStatus(context.Context, int64, domain.BookingStatus, domain.BookingStatus) error {
	return bookingRepo.ErrExecQuery
}
