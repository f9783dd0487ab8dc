package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FleetBookingService/internal/availability"
	"github.com/m04kA/SMC-FleetBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/service/settings/models"
)

// Service сервис настроек календаря
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Load возвращает настройки календаря, при первом обращении создает их со значениями по умолчанию
// Использует транзакцию из контекста, если она есть
func (s *Service) Load(ctx context.Context) (*domain.CalendarSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err == nil {
		return settings, nil
	}

	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Load: failed to get calendar settings: %v", err)
		return nil, fmt.Errorf("%w: Load - get: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info("Load: calendar settings not found, creating defaults")
	settings, err = s.repo.CreateDefault(ctx)
	if err != nil {
		s.logger.Error("Load: failed to create default calendar settings: %v", err)
		return nil, fmt.Errorf("%w: Load - create default: %w", ErrStorageUnavailable, err)
	}

	return settings, nil
}

// Get возвращает настройки календаря для API
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// Update изменяет настройки календаря
// Настройки, при которых ни в один рабочий день нет ни одного слота, отклоняются с ErrInvalidConfiguration
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidConfiguration)
	}

	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	next := req.ApplyTo(*current)
	if err := availability.ValidateSettings(&next); err != nil {
		s.logger.Warn("Update: rejected calendar settings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		s.logger.Error("Update: failed to save calendar settings: %v", err)
		return nil, fmt.Errorf("%w: Update - save: %w", ErrStorageUnavailable, err)
	}

	s.logger.Info("Update: calendar settings updated: %s-%s, slot=%dm, buffer=%dm, quota=%d/week, window=%d %s",
		updated.StartTime, updated.EndTime, updated.SlotDurationMinutes, updated.SlotBufferMinutes,
		updated.MaxBookingsPerWeek, updated.AdvanceBookingWindow, updated.AdvanceBookingUnit)

	return models.FromDomainSettings(updated), nil
}
