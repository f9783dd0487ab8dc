package models

import (
	"time"

	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	"github.com/m04kA/SMC-FleetBookingService/pkg/types"
)

// UpdateSettingsRequest запрос на изменение настроек календаря
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	MaxBookingsPerWeek   *int    `json:"maxBookingsPerWeek,omitempty"`
	StartTime            *string `json:"startTime,omitempty"` // "08:00"
	EndTime              *string `json:"endTime,omitempty"`   // "17:00"
	SlotDurationMinutes  *int    `json:"slotDurationMinutes,omitempty"`
	SlotBufferMinutes    *int    `json:"slotBufferMinutes,omitempty"`
	WorkingDays          []int   `json:"workingDays,omitempty"` // 0 = воскресенье
	AdvanceBookingWindow *int    `json:"advanceBookingWindow,omitempty"`
	AdvanceBookingUnit   *string `json:"advanceBookingUnit,omitempty"` // "hours" | "days"
}

// IsEmpty true, если в запросе нет ни одного поля
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.MaxBookingsPerWeek == nil &&
		r.StartTime == nil &&
		r.EndTime == nil &&
		r.SlotDurationMinutes == nil &&
		r.SlotBufferMinutes == nil &&
		r.WorkingDays == nil &&
		r.AdvanceBookingWindow == nil &&
		r.AdvanceBookingUnit == nil
}

// ApplyTo накладывает переданные поля на текущие настройки
func (r *UpdateSettingsRequest) ApplyTo(current domain.CalendarSettings) domain.CalendarSettings {
	next := current

	if r.MaxBookingsPerWeek != nil {
		next.MaxBookingsPerWeek = *r.MaxBookingsPerWeek
	}
	if r.StartTime != nil {
		next.StartTime = types.TimeString(*r.StartTime)
	}
	if r.EndTime != nil {
		next.EndTime = types.TimeString(*r.EndTime)
	}
	if r.SlotDurationMinutes != nil {
		next.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.SlotBufferMinutes != nil {
		next.SlotBufferMinutes = *r.SlotBufferMinutes
	}
	if r.WorkingDays != nil {
		next.WorkingDays = make(domain.WorkingDays, 0, len(r.WorkingDays))
		for _, d := range r.WorkingDays {
			next.WorkingDays = append(next.WorkingDays, time.Weekday(d))
		}
	}
	if r.AdvanceBookingWindow != nil {
		next.AdvanceBookingWindow = *r.AdvanceBookingWindow
	}
	if r.AdvanceBookingUnit != nil {
		next.AdvanceBookingUnit = domain.AdvanceUnit(*r.AdvanceBookingUnit)
	}

	return next
}

// SettingsResponse ответ с настройками календаря
type SettingsResponse struct {
	MaxBookingsPerWeek   int       `json:"maxBookingsPerWeek"`
	StartTime            string    `json:"startTime"`
	EndTime              string    `json:"endTime"`
	SlotDurationMinutes  int       `json:"slotDurationMinutes"`
	SlotBufferMinutes    int       `json:"slotBufferMinutes"`
	WorkingDays          []int     `json:"workingDays"`
	AdvanceBookingWindow int       `json:"advanceBookingWindow"`
	AdvanceBookingUnit   string    `json:"advanceBookingUnit"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CalendarSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	days := make([]int, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		days[i] = int(d)
	}

	return &SettingsResponse{
		MaxBookingsPerWeek:   s.MaxBookingsPerWeek,
		StartTime:            s.StartTime.String(),
		EndTime:              s.EndTime.String(),
		SlotDurationMinutes:  s.SlotDurationMinutes,
		SlotBufferMinutes:    s.SlotBufferMinutes,
		WorkingDays:          days,
		AdvanceBookingWindow: s.AdvanceBookingWindow,
		AdvanceBookingUnit:   string(s.AdvanceBookingUnit),
		UpdatedAt:            s.UpdatedAt,
	}
}
