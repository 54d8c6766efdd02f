package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bookadmin/internal/catalog"
	"bookadmin/internal/domain"
	"bookadmin/internal/repository"
	"bookadmin/internal/schedule"
	"bookadmin/internal/storage"
	"bookadmin/pkg/validator"
)

const employeePhotoPrefix = "employees"

type EmployeeServiceImpl struct {
	repo         repository.EmployeeRepository
	locationRepo repository.LocationRepository
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
	fileStorage  storage.FileStorage
	logger       *zap.Logger
}

func NewEmployeeService(
	repo repository.EmployeeRepository,
	locationRepo repository.LocationRepository,
	categoryRepo repository.CategoryRepository,
	serviceRepo repository.ServiceRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		repo:         repo,
		locationRepo: locationRepo,
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
		fileStorage:  fileStorage,
		logger:       logger,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, dto domain.CreateEmployeeDTO) (int64, error) {
	dto.FirstName = validator.FormatName(dto.FirstName)
	dto.LastName = validator.FormatName(dto.LastName)
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Note = validator.SanitizeString(dto.Note)

	if dto.Phone != "" {
		if !validator.ValidatePhone(dto.Phone) {
			return 0, domain.ValidationError("некорректный номер телефона")
		}
		dto.Phone = validator.FormatPhone(dto.Phone)
	}

	if dto.Status == "" {
		dto.Status = domain.EmployeeStatusActive
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания сотрудника", zap.Error(err))
		return 0, failure(err, "ошибка при создании сотрудника")
	}

	return id, nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения сотрудника", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении сотрудника")
	}

	return employee, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateEmployeeDTO) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if dto.FirstName != nil {
		name := validator.FormatName(*dto.FirstName)
		if name == "" {
			return domain.ValidationError("имя сотрудника не может быть пустым")
		}
		dto.FirstName = &name
	}
	if dto.LastName != nil {
		name := validator.FormatName(*dto.LastName)
		dto.LastName = &name
	}
	if dto.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*dto.Email))
		dto.Email = &email
	}
	if dto.Phone != nil && *dto.Phone != "" {
		if !validator.ValidatePhone(*dto.Phone) {
			return domain.ValidationError("некорректный номер телефона")
		}
		phone := validator.FormatPhone(*dto.Phone)
		dto.Phone = &phone
	}
	if dto.Status != nil && !dto.Status.IsValid() {
		return domain.ValidationError("некорректный статус сотрудника")
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления сотрудника", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении сотрудника")
	}

	return nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id int64) error {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления сотрудника", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении сотрудника")
	}

	if employee.PhotoURL != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(ctx, employee.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить фото сотрудника", zap.Int64("id", id), zap.Error(err))
		}
	}

	return nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context, filter domain.EmployeeFilter) (*domain.Page[domain.Employee], error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		filter.Status = nil
	}

	employees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка сотрудников", zap.Error(err))
		return nil, errors.New("ошибка при получении списка сотрудников")
	}

	page := 1
	if filter.Limit > 0 {
		page = filter.Offset/filter.Limit + 1
	}

	result := domain.NewPage(employees, total, page, filter.Limit)
	return &result, nil
}

// Form assembles the edit screen: the employee, the schedule to show (falling back to location
// business hours) and every service grouped by category with the employee's selection.
func (s *EmployeeServiceImpl) Form(ctx context.Context, id int64) (*domain.EmployeeForm, error) {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения филиалов", zap.Error(err))
		return nil, errors.New("ошибка при получении формы сотрудника")
	}

	hours := make(map[int64]domain.WeeklySchedule, len(locations))
	for _, location := range locations {
		hours[location.ID] = location.BusinessHours
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения категорий", zap.Error(err))
		return nil, errors.New("ошибка при получении формы сотрудника")
	}

	services, err := s.serviceRepo.List(ctx, domain.ServiceFilter{})
	if err != nil {
		s.logger.Error("ошибка получения услуг", zap.Error(err))
		return nil, errors.New("ошибка при получении формы сотрудника")
	}

	groups := catalog.Group(categories, services)

	return &domain.EmployeeForm{
		Employee:      *employee,
		Schedule:      schedule.ResolveDefault(employee.Schedule, employee.LocationIDs, hours),
		ServiceGroups: catalog.States(groups, employee.ServiceIDs),
	}, nil
}

func (s *EmployeeServiceImpl) SaveSchedule(ctx context.Context, id int64, raw any) (domain.WeeklySchedule, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	week := schedule.Normalize(raw)

	if err := s.repo.UpdateSchedule(ctx, id, week); err != nil {
		s.logger.Error("ошибка сохранения расписания сотрудника", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при сохранении расписания")
	}

	return week, nil
}

func (s *EmployeeServiceImpl) SetServices(ctx context.Context, id int64, serviceIDs []int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	ids := make([]int64, 0, len(serviceIDs))
	seen := make(map[int64]struct{}, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		if serviceID <= 0 {
			continue
		}
		if _, ok := seen[serviceID]; ok {
			continue
		}
		seen[serviceID] = struct{}{}
		ids = append(ids, serviceID)
	}

	if err := s.repo.SetServices(ctx, id, ids); err != nil {
		s.logger.Error("ошибка назначения услуг сотруднику", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при назначении услуг")
	}

	return nil
}

func (s *EmployeeServiceImpl) UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("хранилище файлов не настроено")
	}

	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.fileStorage.UploadImage(ctx, employeePhotoPrefix, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото сотрудника", zap.Int64("id", id), zap.Error(err))
		if errors.Is(err, storage.ErrNotImage) {
			return "", domain.ValidationError("файл не является изображением")
		}
		return "", errors.New("ошибка при загрузке фото")
	}

	if err := s.repo.UpdatePhoto(ctx, id, url); err != nil {
		s.logger.Error("ошибка сохранения фото сотрудника", zap.Int64("id", id), zap.Error(err))
		if delErr := s.fileStorage.DeleteFile(ctx, url); delErr != nil {
			s.logger.Warn("не удалось удалить загруженный файл", zap.String("url", url), zap.Error(delErr))
		}
		return "", failure(err, "ошибка при загрузке фото")
	}

	if employee.PhotoURL != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(ctx, employee.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить старое фото", zap.String("url", employee.PhotoURL), zap.Error(err))
		}
	}

	return url, nil
}

func (s *EmployeeServiceImpl) DeletePhoto(ctx context.Context, id int64) error {
	employee, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if employee.PhotoURL == "" {
		return domain.NotFoundError("у сотрудника нет фото")
	}

	if s.fileStorage == nil {
		return errors.New("хранилище файлов не настроено")
	}

	if err := s.fileStorage.DeleteFile(ctx, employee.PhotoURL); err != nil {
		s.logger.Error("ошибка удаления фото сотрудника", zap.Int64("id", id), zap.Error(err))
		return errors.New("ошибка при удалении фото")
	}

	if err := s.repo.UpdatePhoto(ctx, id, ""); err != nil {
		s.logger.Error("ошибка обновления фото сотрудника", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении фото")
	}

	return nil
}
