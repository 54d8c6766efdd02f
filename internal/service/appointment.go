package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/repository"
	"bookadmin/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo         repository.AppointmentRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	serviceRepo  repository.ServiceRepository
	settings     SettingsService
	logger       *zap.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	serviceRepo repository.ServiceRepository,
	settings SettingsService,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		serviceRepo:  serviceRepo,
		settings:     settings,
		logger:       logger,
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (int64, error) {
	service, err := s.checkReferences(ctx, dto.CustomerID, dto.EmployeeID, dto.ServiceID)
	if err != nil {
		return 0, err
	}

	appointment := domain.Appointment{
		CustomerID:    dto.CustomerID,
		EmployeeID:    dto.EmployeeID,
		ServiceID:     dto.ServiceID,
		LocationID:    dto.LocationID,
		StartAt:       dto.StartAt,
		EndAt:         endOf(dto.StartAt, dto.EndAt, service.Duration),
		Status:        dto.Status,
		PaymentStatus: dto.PaymentStatus,
		Price:         service.Price,
		Notes:         validator.SanitizeString(dto.Notes),
	}

	if dto.Price != nil {
		appointment.Price = *dto.Price
	}

	if appointment.Status == "" {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return 0, err
		}
		appointment.Status = settings.DefaultAppointmentStatus
	}
	if appointment.PaymentStatus == "" {
		appointment.PaymentStatus = domain.PaymentStatusUnpaid
	}

	if err := validateAppointment(appointment); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, appointment)
	if err != nil {
		s.logger.Error("ошибка создания записи", zap.Error(err))
		return 0, failure(err, "ошибка при создании записи")
	}

	s.logger.Info("создана запись",
		zap.Int64("id", id),
		zap.Int64("employeeId", appointment.EmployeeID),
		zap.Time("startAt", appointment.StartAt),
	)

	return id, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении записи")
	}

	return appointment, nil
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if dto.CustomerID != nil {
		appointment.CustomerID = *dto.CustomerID
	}
	if dto.EmployeeID != nil {
		appointment.EmployeeID = *dto.EmployeeID
	}
	serviceChanged := dto.ServiceID != nil && *dto.ServiceID != appointment.ServiceID
	if dto.ServiceID != nil {
		appointment.ServiceID = *dto.ServiceID
	}
	if dto.LocationID != nil {
		appointment.LocationID = dto.LocationID
	}
	if dto.Status != nil {
		appointment.Status = *dto.Status
	}
	if dto.PaymentStatus != nil {
		appointment.PaymentStatus = *dto.PaymentStatus
	}
	if dto.Price != nil {
		appointment.Price = *dto.Price
	}
	if dto.Notes != nil {
		appointment.Notes = validator.SanitizeString(*dto.Notes)
	}

	service, err := s.checkReferences(ctx, appointment.CustomerID, appointment.EmployeeID, appointment.ServiceID)
	if err != nil {
		return err
	}

	if dto.StartAt != nil || dto.EndAt != nil || serviceChanged {
		duration := appointment.EndAt.Sub(appointment.StartAt)
		if dto.StartAt != nil {
			appointment.StartAt = *dto.StartAt
		}
		switch {
		case dto.EndAt != nil:
			appointment.EndAt = *dto.EndAt
		case serviceChanged:
			appointment.EndAt = endOf(appointment.StartAt, nil, service.Duration)
		default:
			appointment.EndAt = appointment.StartAt.Add(duration)
		}
	}

	if err := validateAppointment(*appointment); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, *appointment); err != nil {
		s.logger.Error("ошибка обновления записи", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	if !status.IsValid() {
		return domain.ValidationError("некорректный статус записи")
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.repo.UpdateStatus(ctx, []int64{id}, status); err != nil {
		s.logger.Error("ошибка обновления статуса записи", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении статуса записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) BulkUpdateStatus(ctx context.Context, dto domain.BulkStatusDTO) (int64, error) {
	if !dto.Status.IsValid() {
		return 0, domain.ValidationError("некорректный статус записи")
	}

	ids := make([]int64, 0, len(dto.IDs))
	for _, id := range dto.IDs {
		if id > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return 0, domain.ValidationError("не выбрано ни одной записи")
	}

	affected, err := s.repo.UpdateStatus(ctx, ids, dto.Status)
	if err != nil {
		s.logger.Error("ошибка массового обновления статуса", zap.Int64s("ids", ids), zap.Error(err))
		return 0, failure(err, "ошибка при обновлении статуса записей")
	}

	return affected, nil
}

func (s *AppointmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления записи", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении записи")
	}

	return nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) (*domain.Page[domain.Appointment], error) {
	appointments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, errors.New("ошибка при получении списка записей")
	}

	page := domain.NewPage(appointments, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *AppointmentServiceImpl) checkReferences(ctx context.Context, customerID, employeeID, serviceID int64) (*domain.Service, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		s.logger.Error("клиент для записи не найден", zap.Int64("customerId", customerID), zap.Error(err))
		return nil, failure(err, "клиент не найден")
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		s.logger.Error("сотрудник для записи не найден", zap.Int64("employeeId", employeeID), zap.Error(err))
		return nil, failure(err, "сотрудник не найден")
	}

	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		s.logger.Error("услуга для записи не найдена", zap.Int64("serviceId", serviceID), zap.Error(err))
		return nil, failure(err, "услуга не найдена")
	}

	return service, nil
}

// endOf uses the explicit end when given, otherwise start plus the service duration in minutes.
func endOf(start time.Time, end *time.Time, durationMinutes int) time.Time {
	if end != nil {
		return *end
	}
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

func validateAppointment(a domain.Appointment) error {
	if a.StartAt.IsZero() {
		return domain.ValidationError("не указано время начала записи")
	}
	if !a.EndAt.After(a.StartAt) {
		return domain.ValidationError("время окончания должно быть позже времени начала")
	}
	if !a.Status.IsValid() {
		return domain.ValidationError("некорректный статус записи")
	}
	if a.Price < 0 {
		return domain.ValidationError("цена не может быть отрицательной")
	}
	return nil
}
