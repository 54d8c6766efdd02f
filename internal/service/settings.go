package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
	"bookadmin/internal/repository"
	"bookadmin/pkg/validator"
)

type SettingsServiceImpl struct {
	repo   repository.SettingsRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewSettingsService(repo repository.SettingsRepository, logger *zap.Logger) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Get falls back to defaults until the admin saves settings for the first time.
func (s *SettingsServiceImpl) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		s.logger.Error("ошибка получения настроек", zap.Error(err))
		return nil, errors.New("ошибка при получении настроек")
	}

	return settings, nil
}

func (s *SettingsServiceImpl) Update(ctx context.Context, dto domain.UpdateSettingsDTO) (*domain.Settings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if dto.BusinessName != nil {
		settings.BusinessName = strings.TrimSpace(*dto.BusinessName)
	}
	if dto.BusinessEmail != nil {
		email := strings.ToLower(strings.TrimSpace(*dto.BusinessEmail))
		if email != "" && !validator.ValidateEmail(email) {
			return nil, domain.ValidationError("некорректный email компании")
		}
		settings.BusinessEmail = email
	}
	if dto.BusinessPhone != nil {
		phone, err := normalizePhone(*dto.BusinessPhone)
		if err != nil {
			return nil, err
		}
		settings.BusinessPhone = phone
	}
	if dto.Timezone != nil {
		tz := strings.TrimSpace(*dto.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return nil, domain.ValidationError("неизвестный часовой пояс %q", tz)
		}
		settings.Timezone = tz
	}
	if dto.DateFormat != nil {
		settings.DateFormat = strings.TrimSpace(*dto.DateFormat)
	}
	if dto.TimeFormat != nil {
		settings.TimeFormat = strings.TrimSpace(*dto.TimeFormat)
	}
	if dto.Currency != nil {
		settings.Currency = strings.ToUpper(strings.TrimSpace(*dto.Currency))
	}
	if dto.DefaultPageSize != nil {
		if *dto.DefaultPageSize < 1 || *dto.DefaultPageSize > filter.MaxPageSize {
			return nil, domain.ValidationError("размер страницы должен быть от 1 до %d", filter.MaxPageSize)
		}
		settings.DefaultPageSize = *dto.DefaultPageSize
	}
	if dto.DefaultAppointmentStatus != nil {
		status := *dto.DefaultAppointmentStatus
		if status != domain.AppointmentStatusPending && status != domain.AppointmentStatusApproved {
			return nil, domain.ValidationError("статус по умолчанию может быть только pending или approved")
		}
		settings.DefaultAppointmentStatus = status
	}

	settings.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, *settings); err != nil {
		s.logger.Error("ошибка сохранения настроек", zap.Error(err))
		return nil, errors.New("ошибка при сохранении настроек")
	}

	return settings, nil
}
