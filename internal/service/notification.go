package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/notification"
	"bookadmin/internal/repository"
)

type NotificationServiceImpl struct {
	repo   repository.NotificationRepository
	logger *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, logger *zap.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *NotificationServiceImpl) Create(ctx context.Context, dto domain.SaveNotificationDTO) (int64, error) {
	dto, err := prepareNotification(dto)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания уведомления", zap.Error(err))
		return 0, failure(err, "ошибка при создании уведомления")
	}

	return id, nil
}

func (s *NotificationServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения уведомления", zap.Int64("id", id), zap.Error(err))
		return nil, failure(err, "ошибка при получении уведомления")
	}

	return n, nil
}

func (s *NotificationServiceImpl) Update(ctx context.Context, id int64, dto domain.SaveNotificationDTO) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	dto, err := prepareNotification(dto)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления уведомления", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при обновлении уведомления")
	}

	return nil
}

func (s *NotificationServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления уведомления", zap.Int64("id", id), zap.Error(err))
		return failure(err, "ошибка при удалении уведомления")
	}

	return nil
}

func (s *NotificationServiceImpl) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка уведомлений", zap.Error(err))
		return nil, errors.New("ошибка при получении списка уведомлений")
	}

	return list, nil
}

func (s *NotificationServiceImpl) Preview(_ context.Context, dto domain.NotificationPreviewDTO) domain.NotificationPreview {
	unknown := notification.Unknown(dto.Subject + "\n" + dto.Body)
	if unknown == nil {
		unknown = []string{}
	}

	return domain.NotificationPreview{
		Subject: notification.Render(dto.Subject, dto.Values),
		Body:    notification.Render(dto.Body, dto.Values),
		Unknown: unknown,
	}
}

func (s *NotificationServiceImpl) Placeholders() []notification.Placeholder {
	return notification.Placeholders()
}

// prepareNotification enforces the scope rules and rejects templates with tokens outside the catalog.
func prepareNotification(dto domain.SaveNotificationDTO) (domain.SaveNotificationDTO, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	if dto.Name == "" {
		return dto, domain.ValidationError("название уведомления не может быть пустым")
	}
	if strings.TrimSpace(dto.Body) == "" {
		return dto, domain.ValidationError("текст уведомления не может быть пустым")
	}
	if dto.Channel == domain.NotificationChannelEmail && strings.TrimSpace(dto.Subject) == "" {
		return dto, domain.ValidationError("для email уведомления нужна тема")
	}

	if unknown := notification.Unknown(dto.Subject + "\n" + dto.Body); len(unknown) > 0 {
		return dto, domain.ValidationError("неизвестные плейсхолдеры: %s", strings.Join(unknown, ", "))
	}

	if dto.ServiceScope == "" {
		dto.ServiceScope = domain.ServiceScopeAll
	}

	switch dto.ServiceScope {
	case domain.ServiceScopeAll:
		dto.ServiceIDs = nil
	case domain.ServiceScopeSpecific:
		ids := make([]int64, 0, len(dto.ServiceIDs))
		seen := make(map[int64]struct{}, len(dto.ServiceIDs))
		for _, id := range dto.ServiceIDs {
			if _, ok := seen[id]; ok || id <= 0 {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return dto, domain.ValidationError("выберите хотя бы одну услугу для уведомления")
		}
		dto.ServiceIDs = ids
	default:
		return dto, domain.ValidationError("некорректная область действия уведомления")
	}

	return dto, nil
}
