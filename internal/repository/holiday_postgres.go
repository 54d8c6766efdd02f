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

type HolidayRepo struct {
	db *pgxpool.Pool
}

func NewHolidayRepository(db *pgxpool.Pool) *HolidayRepo {
	return &HolidayRepo{
		db: db,
	}
}

var holidayColumns = []string{"id", "location_id", "date", "name", "recurring", "created_at"}

func (r *HolidayRepo) Create(ctx context.Context, h domain.Holiday) (int64, error) {
	query := `
		INSERT INTO holidays (location_id, date, name, recurring, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, h.LocationID, h.Date, h.Name, h.Recurring, time.Now()).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ValidationError("локация с id %d не найдена", *h.LocationID)
		}
		return 0, fmt.Errorf("ошибка создания выходного дня: %w", err)
	}

	return id, nil
}

func (r *HolidayRepo) GetByID(ctx context.Context, id int64) (*domain.Holiday, error) {
	query, args, err := psql.Select(holidayColumns...).From("holidays").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	holiday, err := scanHoliday(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("выходной день с id %d не найден", id)
		}
		return nil, fmt.Errorf("ошибка получения выходного дня: %w", err)
	}

	return holiday, nil
}

func (r *HolidayRepo) Update(ctx context.Context, h domain.Holiday) error {
	query := `UPDATE holidays SET location_id = $1, date = $2, name = $3, recurring = $4 WHERE id = $5`

	tag, err := r.db.Exec(ctx, query, h.LocationID, h.Date, h.Name, h.Recurring, h.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ValidationError("локация с id %d не найдена", *h.LocationID)
		}
		return fmt.Errorf("ошибка обновления выходного дня: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("выходной день с id %d не найден", h.ID)
	}

	return nil
}

func (r *HolidayRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления выходного дня: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("выходной день с id %d не найден", id)
	}

	return nil
}

// List keeps recurring holidays regardless of the date bounds; callers match them with Holiday.OccursOn.
func (r *HolidayRepo) List(ctx context.Context, filter domain.HolidayFilter) ([]domain.Holiday, error) {
	query, args, err := holidayListQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения выходных дней: %w", err)
	}
	defer rows.Close()

	holidays := []domain.Holiday{}
	for rows.Next() {
		holiday, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования выходного дня: %w", err)
		}
		holidays = append(holidays, *holiday)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return holidays, nil
}

func holidayListQuery(filter domain.HolidayFilter) squirrel.SelectBuilder {
	builder := psql.Select(holidayColumns...).From("holidays").OrderBy("date", "id")

	if filter.LocationID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"location_id": nil},
			squirrel.Eq{"location_id": *filter.LocationID},
		})
	}

	dated := squirrel.And{}
	if filter.From != nil {
		dated = append(dated, squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		dated = append(dated, squirrel.LtOrEq{"date": *filter.To})
	}
	if len(dated) > 0 {
		builder = builder.Where(squirrel.Or{squirrel.Eq{"recurring": true}, dated})
	}

	return builder
}

func scanHoliday(row pgx.Row) (*domain.Holiday, error) {
	var h domain.Holiday
	if err := row.Scan(&h.ID, &h.LocationID, &h.Date, &h.Name, &h.Recurring, &h.CreatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
