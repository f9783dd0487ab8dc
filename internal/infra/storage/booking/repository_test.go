package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetBookingService/pkg/ptr"
)

func newRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRow() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func addBooking(rows *sqlmock.Rows, id int64, date time.Time, at string, status string) *sqlmock.Rows {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, date, at, status,
		"Jane Driver", "jane@fleet.example", nil,
		"TRK-042", "Ford", "Transit", "ABC123",
		"oil_change", nil,
		now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepository(t)
	created := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(
			"2024-01-02", "07:00", domain.StatusPending,
			"Jane Driver", "jane@fleet.example", sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"oil_change", sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, created, created))

	b, err := repo.Create(context.Background(), &domain.Booking{
		ScheduledDate: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "07:00",
		Status:        domain.StatusPending,
		CustomerName:  "Jane Driver",
		CustomerEmail: "jane@fleet.example",
		VehicleMake:   ptr.Ptr("Ford"),
		ServiceType:   "oil_change",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)
	assert.Equal(t, created, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_uniq"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		ScheduledDate: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		ScheduledTime: "07:00",
		Status:        domain.StatusPending,
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, ErrExecQuery)
}

func TestRepository_Create_OtherErrorKeepsDriverError(t *testing.T) {
	repo, _, mock := newRepository(t)
	driverErr := &pq.Error{Code: "40001"}

	mock.ExpectQuery("INSERT INTO bookings").WillReturnError(driverErr)

	_, err := repo.Create(context.Background(), &domain.Booking{ScheduledTime: "07:00"})

	assert.ErrorIs(t, err, ErrExecQuery)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepository(t)
	scheduled := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.FixedZone("", 0))

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(addBooking(bookingRow(), 7, scheduled, "07:00:00", "confirmed"))

	b, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), b.ScheduledDate)
	assert.Equal(t, "07:00", b.ScheduledTime.String())
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Nil(t, b.CustomerPhone)
	require.NotNil(t, b.VehicleUnitNumber)
	assert.Equal(t, "TRK-042", *b.VehicleUnitNumber)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_QueryByDateRange(t *testing.T) {
	repo, _, mock := newRepository(t)
	from := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)

	rows := bookingRow()
	addBooking(rows, 1, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), "07:00:00", "pending")
	addBooking(rows, 2, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), "08:30:00", "in_progress")

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE scheduled_date >= \\$1 AND scheduled_date <= \\$2 AND status IN \\(\\$3,\\$4,\\$5\\) ORDER BY scheduled_date ASC, scheduled_time ASC$").
		WithArgs("2023-12-31", "2024-01-06", "pending", "confirmed", "in_progress").
		WillReturnRows(rows)

	bookings, err := repo.QueryByDateRange(context.Background(), from, to, domain.ActiveStatuses)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "08:30", bookings[1].ScheduledTime.String())
	assert.Equal(t, domain.StatusInProgress, bookings[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_QueryByDateRange_LocksRowsInTransaction(t *testing.T) {
	repo, db, mock := newRepository(t)
	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE$").WillReturnRows(bookingRow())
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	bookings, err := repo.QueryByDateRange(ctx, day, day, nil)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_QueryByDateRange_BadRowFailsWholeQuery(t *testing.T) {
	repo, _, mock := newRepository(t)
	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	rows := bookingRow()
	addBooking(rows, 1, day, "07:00:00", "pending")
	addBooking(rows, 2, day, "not a time", "pending")

	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnRows(rows)

	bookings, err := repo.QueryByDateRange(context.Background(), day, day, domain.ActiveStatuses)
	assert.ErrorIs(t, err, ErrScanRow)
	assert.Nil(t, bookings)
}

func TestRepository_List_WithFilter(t *testing.T) {
	repo, _, mock := newRepository(t)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	status := domain.StatusCancelled

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE scheduled_date >= \\$1 AND status = \\$2 ORDER BY").
		WithArgs("2024-01-01", "cancelled").
		WillReturnRows(addBooking(bookingRow(), 3, start, "09:00:00", "cancelled"))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{StartDate: &start, Status: &status})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.StatusCancelled, bookings[0].Status)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 AND status = \\$3").
		WithArgs("confirmed", int64(5), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.StatusPending, domain.StatusConfirmed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_StaleStatus(t *testing.T) {
	repo, _, mock := newRepository(t)

	// бронирование уже отменили, строка со статусом pending не найдена
	mock.ExpectExec("UPDATE bookings SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 AND status = \\$3").
		WithArgs("confirmed", int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 7, domain.StatusPending, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_ReactivationCollides(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec("UPDATE bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_uniq"})

	err := repo.UpdateStatus(context.Background(), 5, domain.StatusCancelled, domain.StatusPending)
	assert.ErrorIs(t, err, ErrSlotTaken)
}
