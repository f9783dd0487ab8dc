package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
)

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *domain.CalendarSettings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(s *domain.CalendarSettings) {}},
		{name: "zero quota is allowed", mutate: func(s *domain.CalendarSettings) { s.MaxBookingsPerWeek = 0 }},
		{name: "negative quota", mutate: func(s *domain.CalendarSettings) { s.MaxBookingsPerWeek = -1 }, wantErr: true},
		{name: "start after end", mutate: func(s *domain.CalendarSettings) { s.StartTime = "18:00" }, wantErr: true},
		{name: "start equals end", mutate: func(s *domain.CalendarSettings) { s.StartTime = "17:00" }, wantErr: true},
		{name: "malformed end", mutate: func(s *domain.CalendarSettings) { s.EndTime = "5pm" }, wantErr: true},
		{name: "slot longer than window", mutate: func(s *domain.CalendarSettings) {
			s.StartTime = "08:00"
			s.EndTime = "09:00"
			s.SlotDurationMinutes = 90
		}, wantErr: true},
		{name: "too short slot", mutate: func(s *domain.CalendarSettings) { s.SlotDurationMinutes = 1 }, wantErr: true},
		{name: "negative buffer", mutate: func(s *domain.CalendarSettings) { s.SlotBufferMinutes = -5 }, wantErr: true},
		{name: "no working days", mutate: func(s *domain.CalendarSettings) { s.WorkingDays = nil }, wantErr: true},
		{name: "weekday out of range", mutate: func(s *domain.CalendarSettings) {
			s.WorkingDays = domain.WorkingDays{time.Weekday(7)}
		}, wantErr: true},
		{name: "duplicated weekday", mutate: func(s *domain.CalendarSettings) {
			s.WorkingDays = domain.WorkingDays{time.Monday, time.Monday}
		}, wantErr: true},
		{name: "unknown unit", mutate: func(s *domain.CalendarSettings) { s.AdvanceBookingUnit = "weeks" }, wantErr: true},
		{name: "window too far", mutate: func(s *domain.CalendarSettings) {
			s.AdvanceBookingUnit = domain.AdvanceUnitDays
			s.AdvanceBookingWindow = 400
		}, wantErr: true},
		{name: "sunday only", mutate: func(s *domain.CalendarSettings) {
			s.WorkingDays = domain.WorkingDays{time.Sunday}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultCalendarSettings()
			tt.mutate(&settings)

			err := ValidateSettings(&settings)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
