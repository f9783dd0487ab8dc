package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetBookingService/pkg/psqlbuilder"
)

const table = "calendar_settings"

// Repository репозиторий настроек календаря (одна строка с id = 1)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает настройки календаря
func (r *Repository) Get(ctx context.Context) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"max_bookings_per_week",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"slot_buffer_minutes",
		"working_days",
		"advance_booking_window",
		"advance_booking_unit",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": domain.SettingsID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CalendarSettings
	var workingDays pq.Int64Array
	var unit string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.MaxBookingsPerWeek,
		&s.StartTime,
		&s.EndTime,
		&s.SlotDurationMinutes,
		&s.SlotBufferMinutes,
		&workingDays,
		&s.AdvanceBookingWindow,
		&unit,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	s.WorkingDays = make(domain.WorkingDays, 0, len(workingDays))
	for _, day := range workingDays {
		s.WorkingDays = append(s.WorkingDays, time.Weekday(day))
	}
	s.AdvanceBookingUnit = domain.AdvanceUnit(unit)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// CreateDefault вставляет настройки по умолчанию, если строки еще нет, и возвращает актуальные
// Параллельные вызовы безопасны: ON CONFLICT DO NOTHING
func (r *Repository) CreateDefault(ctx context.Context) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	defaults := domain.DefaultCalendarSettings()

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"max_bookings_per_week",
			"start_time",
			"end_time",
			"slot_duration_minutes",
			"slot_buffer_minutes",
			"working_days",
			"advance_booking_window",
			"advance_booking_unit",
		).
		Values(
			domain.SettingsID,
			defaults.MaxBookingsPerWeek,
			defaults.StartTime,
			defaults.EndTime,
			defaults.SlotDurationMinutes,
			defaults.SlotBufferMinutes,
			workingDaysArray(defaults.WorkingDays),
			defaults.AdvanceBookingWindow,
			string(defaults.AdvanceBookingUnit),
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateDefault - execute insert: %w", ErrExecQuery, err)
	}

	return r.Get(ctx)
}

// Update сохраняет настройки календаря
func (r *Repository) Update(ctx context.Context, s *domain.CalendarSettings) (*domain.CalendarSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("max_bookings_per_week", s.MaxBookingsPerWeek).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("slot_duration_minutes", s.SlotDurationMinutes).
		Set("slot_buffer_minutes", s.SlotBufferMinutes).
		Set("working_days", workingDaysArray(s.WorkingDays)).
		Set("advance_booking_window", s.AdvanceBookingWindow).
		Set("advance_booking_unit", string(s.AdvanceBookingUnit)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": domain.SettingsID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	updated := *s
	updated.ID = domain.SettingsID
	updated.CreatedAt = createdAt.Time
	updated.UpdatedAt = updatedAt.Time

	return &updated, nil
}

func workingDaysArray(days domain.WorkingDays) interface{} {
	values := make([]int64, len(days))
	for i, d := range days {
		values[i] = int64(d)
	}
	return pq.Array(values)
}
