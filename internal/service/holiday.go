package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
	"bookadmin/internal/repository"
)

type HolidayServiceImpl struct {
	repo     repository.HolidayRepository
	settings SettingsService
	logger   *zap.Logger
}

func NewHolidayService(repo repository.HolidayRepository, settings SettingsService, logger *zap.Logger) *HolidayServiceImpl {
	return &HolidayServiceImpl{
		repo:     repo,
		settings: settings,
		logger:   logger,
	}
}

func (s *HolidayServiceImpl) Create(ctx context.Context, dto domain.SaveHolidayDTO) (int64, error) {
	holiday, err := s.fromDTO(ctx, dto)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, holiday)
	if err != nil {
		s.logger.Error("ошибка создания выходного дня", zap.Error(err))
		return 0, failure(err, "ошибка при создании выходного дня")
	}

	return id, nil
}

func (s *HolidayServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Holiday, error) {
	holiday, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения выходного дня", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении выходного дня")
	}

	return holiday, nil
}

func (s *HolidayServiceImpl) Update(ctx context.Context, id int64, dto domain.SaveHolidayDTO) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	holiday, err := s.fromDTO(ctx, dto)
	if err != nil {
		return err
	}
	holiday.ID = id

	if err := s.repo.Update(ctx, holiday); err != nil {
		s.logger.Error("ошибка обновления выходного дня", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении выходного дня")
	}

	return nil
}

func (s *HolidayServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления выходного дня", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении выходного дня")
	}

	return nil
}

func (s *HolidayServiceImpl) List(ctx context.Context, f domain.HolidayFilter) ([]domain.Holiday, error) {
	holidays, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("ошибка получения списка выходных дней", zap.Error(err))
		return nil, errors.New("ошибка при получении списка выходных дней")
	}

	return holidays, nil
}

func (s *HolidayServiceImpl) fromDTO(ctx context.Context, dto domain.SaveHolidayDTO) (domain.Holiday, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return domain.Holiday{}, domain.ValidationError("название выходного дня не может быть пустым")
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Holiday{}, err
	}

	date := filter.StartOfDay(dto.Date, settings.Location())
	if date == nil {
		return domain.Holiday{}, domain.ValidationError("некорректная дата выходного дня")
	}

	return domain.Holiday{
		LocationID: dto.LocationID,
		Date:       *date,
		Name:       name,
		Recurring:  dto.Recurring,
	}, nil
}
