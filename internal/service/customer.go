package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/repository"
	"bookadmin/pkg/validator"
)

const birthdayLayout = "2006-01-02"

type CustomerServiceImpl struct {
	repo   repository.CustomerRepository
	logger *zap.Logger
}

func NewCustomerService(repo repository.CustomerRepository, logger *zap.Logger) *CustomerServiceImpl {
	return &CustomerServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *CustomerServiceImpl) Create(ctx context.Context, dto domain.CreateCustomerDTO) (int64, error) {
	customer := domain.Customer{
		FirstName: validator.FormatName(dto.FirstName),
		LastName:  validator.FormatName(dto.LastName),
		Email:     strings.ToLower(strings.TrimSpace(dto.Email)),
		Note:      validator.SanitizeString(dto.Note),
	}

	if customer.FirstName == "" {
		return 0, domain.ValidationError("имя клиента не может быть пустым")
	}

	phone, err := normalizePhone(dto.Phone)
	if err != nil {
		return 0, err
	}
	customer.Phone = phone

	if dto.Birthday != nil {
		birthday, err := parseBirthday(*dto.Birthday)
		if err != nil {
			return 0, err
		}
		customer.Birthday = birthday
	}

	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		s.logger.Error("ошибка создания клиента", zap.Error(err))
		return 0, failure(err, "ошибка при создании клиента")
	}

	return id, nil
}

func (s *CustomerServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения клиента", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении клиента")
	}

	return customer, nil
}

func (s *CustomerServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateCustomerDTO) error {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if dto.FirstName != nil {
		customer.FirstName = validator.FormatName(*dto.FirstName)
		if customer.FirstName == "" {
			return domain.ValidationError("имя клиента не может быть пустым")
		}
	}
	if dto.LastName != nil {
		customer.LastName = validator.FormatName(*dto.LastName)
	}
	if dto.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*dto.Email))
	}
	if dto.Phone != nil {
		phone, err := normalizePhone(*dto.Phone)
		if err != nil {
			return err
		}
		customer.Phone = phone
	}
	if dto.Note != nil {
		customer.Note = validator.SanitizeString(*dto.Note)
	}
	if dto.Birthday != nil {
		birthday, err := parseBirthday(*dto.Birthday)
		if err != nil {
			return err
		}
		customer.Birthday = birthday
	}

	if err := s.repo.Update(ctx, *customer); err != nil {
		s.logger.Error("ошибка обновления клиента", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении клиента")
	}

	return nil
}

func (s *CustomerServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления клиента", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении клиента")
	}

	return nil
}

func (s *CustomerServiceImpl) List(ctx context.Context, filter domain.CustomerFilter) (*domain.Page[domain.Customer], error) {
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка клиентов", zap.Error(err))
		return nil, errors.New("ошибка при получении списка клиентов")
	}

	page := domain.NewPage(customers, total, filter.Page, filter.PageSize)
	return &page, nil
}

func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	if !validator.ValidatePhone(phone) {
		return "", domain.ValidationError("некорректный номер телефона")
	}
	return validator.FormatPhone(phone), nil
}

// parseBirthday treats an empty value as "clear the birthday".
func parseBirthday(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	birthday, err := time.Parse(birthdayLayout, value)
	if err != nil {
		return nil, domain.ValidationError("некорректная дата рождения, ожидается формат ГГГГ-ММ-ДД")
	}

	return &birthday, nil
}
