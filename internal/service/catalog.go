package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bookadmin/internal/catalog"
	"bookadmin/internal/domain"
	"bookadmin/internal/repository"
	"bookadmin/pkg/validator"
)

const (
	minServiceDuration  = 5
	defaultServiceColor = "#1788FB"
)

type CatalogServiceImpl struct {
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
	logger       *zap.Logger
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	serviceRepo repository.ServiceRepository,
	logger *zap.Logger,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
		logger:       logger,
	}
}

func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, dto domain.CreateCategoryDTO) (int64, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return 0, domain.ValidationError("название категории не может быть пустым")
	}

	id, err := s.categoryRepo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания категории", zap.Error(err))
		return 0, failure(err, "ошибка при создании категории")
	}

	return id, nil
}

func (s *CatalogServiceImpl) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения категории", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении категории")
	}

	return category, nil
}

func (s *CatalogServiceImpl) UpdateCategory(ctx context.Context, id int64, dto domain.UpdateCategoryDTO) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return domain.ValidationError("название категории не может быть пустым")
		}
		dto.Name = &name
	}

	if err := s.categoryRepo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления категории", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении категории")
	}

	return nil
}

func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления категории", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении категории")
	}

	return nil
}

func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка категорий", zap.Error(err))
		return nil, errors.New("ошибка при получении списка категорий")
	}

	return categories, nil
}

func (s *CatalogServiceImpl) CreateService(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Capacity == 0 {
		dto.Capacity = 1
	}
	if dto.Color == "" {
		dto.Color = defaultServiceColor
	}
	if dto.Status == "" {
		dto.Status = domain.ServiceStatusVisible
	}

	if err := validateService(dto.Name, dto.Duration, dto.Price, dto.Capacity, dto.Color); err != nil {
		return 0, err
	}

	id, err := s.serviceRepo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания услуги", zap.Error(err))
		return 0, failure(err, "ошибка при создании услуги")
	}

	return id, nil
}

func (s *CatalogServiceImpl) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения услуги", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении услуги")
	}

	return service, nil
}

func (s *CatalogServiceImpl) UpdateService(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	current, err := s.GetService(ctx, id)
	if err != nil {
		return err
	}

	name, duration, price, capacity, color := current.Name, current.Duration, current.Price, current.Capacity, current.Color
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		dto.Name = &trimmed
		name = trimmed
	}
	if dto.Duration != nil {
		duration = *dto.Duration
	}
	if dto.Price != nil {
		price = *dto.Price
	}
	if dto.Capacity != nil {
		capacity = *dto.Capacity
	}
	if dto.Color != nil {
		color = *dto.Color
	}

	if err := validateService(name, duration, price, capacity, color); err != nil {
		return err
	}

	if err := s.serviceRepo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления услуги", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении услуги")
	}

	return nil
}

func (s *CatalogServiceImpl) DeleteService(ctx context.Context, id int64) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления услуги", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении услуги")
	}

	return nil
}

func (s *CatalogServiceImpl) ListServices(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error) {
	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка услуг", zap.Error(err))
		return nil, errors.New("ошибка при получении списка услуг")
	}

	return services, nil
}

func (s *CatalogServiceImpl) Grouped(ctx context.Context, filter domain.ServiceFilter) ([]domain.ServiceGroup, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	services, err := s.ListServices(ctx, filter)
	if err != nil {
		return nil, err
	}

	return catalog.Group(categories, services), nil
}

func validateService(name string, duration int, price float64, capacity int, color string) error {
	if name == "" {
		return domain.ValidationError("название услуги не может быть пустым")
	}
	if duration < minServiceDuration {
		return domain.ValidationError("длительность услуги должна быть не меньше %d минут", minServiceDuration)
	}
	if price < 0 {
		return domain.ValidationError("цена услуги не может быть отрицательной")
	}
	if capacity < 1 {
		return domain.ValidationError("вместимость услуги должна быть не меньше 1")
	}
	if !validator.ValidateHexColor(color) {
		return domain.ValidationError("некорректный цвет услуги")
	}
	return nil
}
