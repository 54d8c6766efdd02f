package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookadmin/internal/domain"
)

type NotificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{
		db: db,
	}
}

var notificationColumns = []string{
	"id", "name", "channel", "event", "recipient", "subject", "body",
	"is_active", "service_scope", "created_at", "updated_at",
}

func (r *NotificationRepo) Create(ctx context.Context, dto domain.SaveNotificationDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO notifications (name, channel, event, recipient, subject, body, is_active, service_scope, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		dto.Name,
		dto.Channel,
		dto.Event,
		dto.Recipient,
		dto.Subject,
		dto.Body,
		dto.IsActive,
		dto.ServiceScope,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания уведомления: %w", err)
	}

	if err := replaceNotificationServices(ctx, tx, id, dto.ServiceIDs); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	query, args, err := psql.Select(notificationColumns...).From("notifications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	notification, err := scanNotification(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("уведомление с id %d не найдено", id)
		}
		return nil, fmt.Errorf("ошибка получения уведомления: %w", err)
	}

	notifications := []domain.Notification{*notification}
	if err := r.loadServices(ctx, notifications); err != nil {
		return nil, err
	}

	return &notifications[0], nil
}

func (r *NotificationRepo) Update(ctx context.Context, id int64, dto domain.SaveNotificationDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE notifications
		SET name = $1, channel = $2, event = $3, recipient = $4, subject = $5, body = $6,
		    is_active = $7, service_scope = $8, updated_at = $9
		WHERE id = $10
	`

	tag, err := tx.Exec(ctx, query,
		dto.Name,
		dto.Channel,
		dto.Event,
		dto.Recipient,
		dto.Subject,
		dto.Body,
		dto.IsActive,
		dto.ServiceScope,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления уведомления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("уведомление с id %d не найдено", id)
	}

	if err := replaceNotificationServices(ctx, tx, id, dto.ServiceIDs); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления уведомления: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("уведомление с id %d не найдено", id)
	}

	return nil
}

func (r *NotificationRepo) List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error) {
	builder := psql.Select(notificationColumns...).From("notifications").OrderBy("event", "id")
	if filter.Event != nil {
		builder = builder.Where(squirrel.Eq{"event": *filter.Event})
	}
	if filter.Channel != nil {
		builder = builder.Where(squirrel.Eq{"channel": *filter.Channel})
	}
	if filter.Recipient != nil {
		builder = builder.Where(squirrel.Eq{"recipient": *filter.Recipient})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения уведомлений: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования уведомления: %w", err)
		}
		notifications = append(notifications, *notification)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	if err := r.loadServices(ctx, notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepo) loadServices(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	ids := make([]int64, len(notifications))
	byID := make(map[int64]*domain.Notification, len(notifications))
	for i := range notifications {
		notifications[i].ServiceIDs = []int64{}
		ids[i] = notifications[i].ID
		byID[notifications[i].ID] = &notifications[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT notification_id, service_id FROM notification_services
		WHERE notification_id = ANY($1)
		ORDER BY notification_id, service_id
	`, ids)
	if err != nil {
		return fmt.Errorf("ошибка получения услуг уведомлений: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var notificationID, serviceID int64
		if err := rows.Scan(&notificationID, &serviceID); err != nil {
			return fmt.Errorf("ошибка сканирования услуг уведомлений: %w", err)
		}
		byID[notificationID].ServiceIDs = append(byID[notificationID].ServiceIDs, serviceID)
	}

	return rows.Err()
}

func replaceNotificationServices(ctx context.Context, tx pgx.Tx, notificationID int64, serviceIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM notification_services WHERE notification_id = $1`, notificationID); err != nil {
		return fmt.Errorf("ошибка удаления услуг уведомления: %w", err)
	}

	for _, serviceID := range serviceIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO notification_services (notification_id, service_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, notificationID, serviceID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ValidationError("услуга с id %d не найдена", serviceID)
			}
			return fmt.Errorf("ошибка добавления услуги уведомления: %w", err)
		}
	}

	return nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(
		&n.ID,
		&n.Name,
		&n.Channel,
		&n.Event,
		&n.Recipient,
		&n.Subject,
		&n.Body,
		&n.IsActive,
		&n.ServiceScope,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
