package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookadmin/internal/domain"
)

type LocationRepo struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepo {
	return &LocationRepo{
		db: db,
	}
}

const locationColumns = `id, name, address, phone, business_hours, created_at, updated_at`

func (r *LocationRepo) Create(ctx context.Context, dto domain.SaveLocationDTO) (int64, error) {
	query := `
		INSERT INTO locations (name, address, phone, business_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, dto.Name, dto.Address, dto.Phone, domain.NewWeeklySchedule(), time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания локации: %w", err)
	}

	return id, nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	location, err := scanLocation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("локация с id %d не найдена", id)
		}
		return nil, fmt.Errorf("ошибка получения локации: %w", err)
	}

	return location, nil
}

func (r *LocationRepo) Update(ctx context.Context, id int64, dto domain.SaveLocationDTO) error {
	query := `UPDATE locations SET name = $1, address = $2, phone = $3, updated_at = $4 WHERE id = $5`

	tag, err := r.db.Exec(ctx, query, dto.Name, dto.Address, dto.Phone, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления локации: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("локация с id %d не найдена", id)
	}

	return nil
}

func (r *LocationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления локации: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("локация с id %d не найдена", id)
	}

	return nil
}

func (r *LocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка локаций: %w", err)
	}
	defer rows.Close()

	locations := []domain.Location{}
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования локации: %w", err)
		}
		locations = append(locations, *location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return locations, nil
}

func (r *LocationRepo) UpdateBusinessHours(ctx context.Context, id int64, hours domain.WeeklySchedule) error {
	tag, err := r.db.Exec(ctx, `UPDATE locations SET business_hours = $1, updated_at = $2 WHERE id = $3`, hours, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления часов работы: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("локация с id %d не найдена", id)
	}

	return nil
}

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var location domain.Location
	err := row.Scan(
		&location.ID,
		&location.Name,
		&location.Address,
		&location.Phone,
		&location.BusinessHours,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &location, nil
}
