package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookadmin/internal/domain"
)

type ServiceRepo struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{
		db: db,
	}
}

var serviceColumns = []string{
	"s.id", "s.name", "s.description", "s.duration", "s.price", "s.capacity",
	"s.color", "s.status", "s.created_at", "s.updated_at",
}

func (r *ServiceRepo) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	status := dto.Status
	if status == "" {
		status = domain.ServiceStatusVisible
	}

	query := `
		INSERT INTO services (name, description, duration, price, capacity, color, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		dto.Name,
		dto.Description,
		dto.Duration,
		dto.Price,
		dto.Capacity,
		dto.Color,
		status,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания услуги: %w", err)
	}

	if err := replaceServiceCategories(ctx, tx, id, dto.CategoryIDs); err != nil {
		return 0, err
	}
	if err := replaceServiceProviders(ctx, tx, id, dto.Providers); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query, args, err := psql.Select(serviceColumns...).From("services s").Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	service, err := scanService(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("услуга с id %d не найдена", id)
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}

	services := []domain.Service{*service}
	if err := r.loadRelations(ctx, services); err != nil {
		return nil, err
	}

	return &services[0], nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var updateFields []string
	var args []interface{}
	argCount := 1

	set := func(column string, value interface{}) {
		updateFields = append(updateFields, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if dto.Name != nil {
		set("name", *dto.Name)
	}
	if dto.Description != nil {
		set("description", *dto.Description)
	}
	if dto.Duration != nil {
		set("duration", *dto.Duration)
	}
	if dto.Price != nil {
		set("price", *dto.Price)
	}
	if dto.Capacity != nil {
		set("capacity", *dto.Capacity)
	}
	if dto.Color != nil {
		set("color", *dto.Color)
	}
	if dto.Status != nil {
		set("status", *dto.Status)
	}
	set("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE services SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("услуга с id %d не найдена", id)
	}

	if dto.CategoryIDs != nil {
		if err := replaceServiceCategories(ctx, tx, id, *dto.CategoryIDs); err != nil {
			return err
		}
	}
	if dto.Providers != nil {
		if err := replaceServiceProviders(ctx, tx, id, *dto.Providers); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("услуга с id %d не найдена", id)
	}

	return nil
}

func (r *ServiceRepo) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error) {
	query, args, err := serviceListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования результатов: %w", err)
		}
		services = append(services, *service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	if err := r.loadRelations(ctx, services); err != nil {
		return nil, err
	}

	return services, nil
}

func serviceListQuery(filter domain.ServiceFilter) squirrel.SelectBuilder {
	builder := psql.Select(serviceColumns...).From("services s").OrderBy("s.name", "s.id")

	if filter.Search != nil {
		builder = builder.Where("s.name ILIKE ?", likePattern(*filter.Search))
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"s.status": *filter.Status})
	}
	if filter.CategoryID != nil {
		builder = builder.Where("EXISTS (SELECT 1 FROM service_categories sc WHERE sc.service_id = s.id AND sc.category_id = ?)", *filter.CategoryID)
	}
	if filter.EmployeeID != nil {
		builder = builder.Where("EXISTS (SELECT 1 FROM service_providers sp WHERE sp.service_id = s.id AND sp.employee_id = ?)", *filter.EmployeeID)
	}

	return builder
}

func (r *ServiceRepo) loadRelations(ctx context.Context, services []domain.Service) error {
	if len(services) == 0 {
		return nil
	}

	ids := make([]int64, len(services))
	byID := make(map[int64]*domain.Service, len(services))
	for i := range services {
		services[i].Categories = []domain.Category{}
		services[i].Providers = []domain.ServiceProvider{}
		ids[i] = services[i].ID
		byID[services[i].ID] = &services[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT sc.service_id, c.id, c.name, c.position, c.created_at, c.updated_at
		FROM service_categories sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.service_id = ANY($1)
		ORDER BY c.position, c.id
	`, ids)
	if err != nil {
		return fmt.Errorf("ошибка получения категорий услуг: %w", err)
	}
	for rows.Next() {
		var serviceID int64
		var category domain.Category
		if err := rows.Scan(&serviceID, &category.ID, &category.Name, &category.Position, &category.CreatedAt, &category.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка сканирования категорий услуг: %w", err)
		}
		byID[serviceID].Categories = append(byID[serviceID].Categories, category)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT service_id, employee_id, position
		FROM service_providers
		WHERE service_id = ANY($1)
		ORDER BY service_id, position, employee_id
	`, ids)
	if err != nil {
		return fmt.Errorf("ошибка получения исполнителей услуг: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var serviceID int64
		var provider domain.ServiceProvider
		if err := rows.Scan(&serviceID, &provider.EmployeeID, &provider.Order); err != nil {
			return fmt.Errorf("ошибка сканирования исполнителей услуг: %w", err)
		}
		byID[serviceID].Providers = append(byID[serviceID].Providers, provider)
	}

	return rows.Err()
}

func replaceServiceCategories(ctx context.Context, tx pgx.Tx, serviceID int64, categoryIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM service_categories WHERE service_id = $1`, serviceID); err != nil {
		return fmt.Errorf("ошибка удаления категорий услуги: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO service_categories (service_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, serviceID, categoryID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ValidationError("категория с id %d не найдена", categoryID)
			}
			return fmt.Errorf("ошибка добавления категории услуги: %w", err)
		}
	}

	return nil
}

func replaceServiceProviders(ctx context.Context, tx pgx.Tx, serviceID int64, providers []domain.ServiceProvider) error {
	if _, err := tx.Exec(ctx, `DELETE FROM service_providers WHERE service_id = $1`, serviceID); err != nil {
		return fmt.Errorf("ошибка удаления исполнителей услуги: %w", err)
	}

	for _, provider := range providers {
		_, err := tx.Exec(ctx, `
			INSERT INTO service_providers (service_id, employee_id, position) VALUES ($1, $2, $3)
			ON CONFLICT (service_id, employee_id) DO UPDATE SET position = EXCLUDED.position
		`, serviceID, provider.EmployeeID, provider.Order)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ValidationError("сотрудник с id %d не найден", provider.EmployeeID)
			}
			return fmt.Errorf("ошибка добавления исполнителя услуги: %w", err)
		}
	}

	return nil
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var service domain.Service
	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Duration,
		&service.Price,
		&service.Capacity,
		&service.Color,
		&service.Status,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}
