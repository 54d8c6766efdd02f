package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/repository"
	"bookadmin/internal/schedule"
)

type LocationServiceImpl struct {
	repo   repository.LocationRepository
	logger *zap.Logger
}

func NewLocationService(repo repository.LocationRepository, logger *zap.Logger) *LocationServiceImpl {
	return &LocationServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *LocationServiceImpl) Create(ctx context.Context, dto domain.SaveLocationDTO) (int64, error) {
	dto, err := prepareLocation(dto)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания филиала", zap.Error(err))
		return 0, failure(err, "ошибка при создании филиала")
	}

	return id, nil
}

func (s *LocationServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения филиала", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении филиала")
	}

	return location, nil
}

func (s *LocationServiceImpl) Update(ctx context.Context, id int64, dto domain.SaveLocationDTO) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	dto, err := prepareLocation(dto)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления филиала", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении филиала")
	}

	return nil
}

func (s *LocationServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления филиала", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении филиала")
	}

	return nil
}

func (s *LocationServiceImpl) List(ctx context.Context) ([]domain.Location, error) {
	locations, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка филиалов", zap.Error(err))
		return nil, errors.New("ошибка при получении списка филиалов")
	}

	return locations, nil
}

func (s *LocationServiceImpl) SaveBusinessHours(ctx context.Context, id int64, raw any) (domain.WeeklySchedule, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	hours := schedule.Normalize(raw)

	if err := s.repo.UpdateBusinessHours(ctx, id, hours); err != nil {
		s.logger.Error("ошибка сохранения часов работы", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при сохранении часов работы")
	}

	return hours, nil
}

func prepareLocation(dto domain.SaveLocationDTO) (domain.SaveLocationDTO, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Address = strings.TrimSpace(dto.Address)
	if dto.Name == "" {
		return dto, domain.ValidationError("название филиала не может быть пустым")
	}

	phone, err := normalizePhone(dto.Phone)
	if err != nil {
		return dto, err
	}
	dto.Phone = phone

	return dto, nil
}
