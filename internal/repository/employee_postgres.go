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

type EmployeeRepo struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{
		db: db,
	}
}

var employeeColumns = []string{
	"e.id", "e.first_name", "e.last_name", "e.email", "e.phone", "e.note",
	"e.photo_url", "e.status", "e.schedule", "e.created_at", "e.updated_at",
}

func (r *EmployeeRepo) Create(ctx context.Context, dto domain.CreateEmployeeDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	status := dto.Status
	if status == "" {
		status = domain.EmployeeStatusActive
	}

	query := `
		INSERT INTO employees (first_name, last_name, email, phone, note, photo_url, status, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, $7, $8, $8)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		dto.FirstName,
		dto.LastName,
		dto.Email,
		dto.Phone,
		dto.Note,
		status,
		domain.NewWeeklySchedule(),
		time.Now(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ConflictError("сотрудник с email %s уже существует", dto.Email)
		}
		return 0, fmt.Errorf("ошибка создания сотрудника: %w", err)
	}

	if err := replaceEmployeeLocations(ctx, tx, id, dto.LocationIDs); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return id, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query, args, err := psql.Select(employeeColumns...).From("employees e").Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	employee, err := scanEmployee(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("сотрудник с id %d не найден", id)
		}
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}

	employees := []domain.Employee{*employee}
	if err := r.loadRelations(ctx, employees); err != nil {
		return nil, err
	}

	return &employees[0], nil
}

func (r *EmployeeRepo) Update(ctx context.Context, id int64, dto domain.UpdateEmployeeDTO) error {
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

	if dto.FirstName != nil {
		set("first_name", *dto.FirstName)
	}
	if dto.LastName != nil {
		set("last_name", *dto.LastName)
	}
	if dto.Email != nil {
		set("email", *dto.Email)
	}
	if dto.Phone != nil {
		set("phone", *dto.Phone)
	}
	if dto.Note != nil {
		set("note", *dto.Note)
	}
	if dto.Status != nil {
		set("status", *dto.Status)
	}
	set("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d`, strings.Join(updateFields, ", "), argCount)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError("сотрудник с таким email уже существует")
		}
		return fmt.Errorf("ошибка обновления сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("сотрудник с id %d не найден", id)
	}

	if dto.LocationIDs != nil {
		if err := replaceEmployeeLocations(ctx, tx, id, *dto.LocationIDs); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("сотрудник с id %d не найден", id)
	}

	return nil
}

func (r *EmployeeRepo) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int, error) {
	where := squirrel.And{}
	if filter.Search != nil {
		p := likePattern(*filter.Search)
		where = append(where, squirrel.Or{
			squirrel.Expr("(e.first_name || ' ' || e.last_name) ILIKE ?", p),
			squirrel.Expr("e.email ILIKE ?", p),
		})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"e.status": *filter.Status})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("employees e").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета сотрудников: %w", err)
	}

	builder := psql.Select(employeeColumns...).From("employees e").Where(where).OrderBy("e.first_name", "e.last_name", "e.id")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования результатов: %w", err)
		}
		employees = append(employees, *employee)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	if err := r.loadRelations(ctx, employees); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepo) UpdateSchedule(ctx context.Context, id int64, schedule domain.WeeklySchedule) error {
	tag, err := r.db.Exec(ctx, `UPDATE employees SET schedule = $1, updated_at = $2 WHERE id = $3`, schedule, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления расписания сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("сотрудник с id %d не найден", id)
	}

	return nil
}

// SetServices keeps the display position of services the employee already provides.
func (r *EmployeeRepo) SetServices(ctx context.Context, id int64, serviceIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	if serviceIDs == nil {
		serviceIDs = []int64{}
	}

	_, err = tx.Exec(ctx, `DELETE FROM service_providers WHERE employee_id = $1 AND NOT (service_id = ANY($2))`, id, serviceIDs)
	if err != nil {
		return fmt.Errorf("ошибка удаления услуг сотрудника: %w", err)
	}

	insert := `
		INSERT INTO service_providers (service_id, employee_id, position)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0) FROM service_providers WHERE service_id = $1
		ON CONFLICT (service_id, employee_id) DO NOTHING
	`
	for _, serviceID := range serviceIDs {
		if _, err := tx.Exec(ctx, insert, serviceID, id); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ValidationError("услуга с id %d не найдена", serviceID)
			}
			return fmt.Errorf("ошибка назначения услуги сотруднику: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка при коммите транзакции: %w", err)
	}

	return nil
}

func (r *EmployeeRepo) UpdatePhoto(ctx context.Context, id int64, photoURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE employees SET photo_url = $1, updated_at = $2 WHERE id = $3`, photoURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("ошибка обновления фото сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("сотрудник с id %d не найден", id)
	}

	return nil
}

func (r *EmployeeRepo) loadRelations(ctx context.Context, employees []domain.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]int64, len(employees))
	byID := make(map[int64]*domain.Employee, len(employees))
	for i := range employees {
		employees[i].LocationIDs = []int64{}
		employees[i].ServiceIDs = []int64{}
		ids[i] = employees[i].ID
		byID[employees[i].ID] = &employees[i]
	}

	rows, err := r.db.Query(ctx, `
		SELECT employee_id, location_id FROM employee_locations
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, position, location_id
	`, ids)
	if err != nil {
		return fmt.Errorf("ошибка получения локаций сотрудников: %w", err)
	}
	for rows.Next() {
		var employeeID, locationID int64
		if err := rows.Scan(&employeeID, &locationID); err != nil {
			rows.Close()
			return fmt.Errorf("ошибка сканирования локаций сотрудников: %w", err)
		}
		byID[employeeID].LocationIDs = append(byID[employeeID].LocationIDs, locationID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT employee_id, service_id FROM service_providers
		WHERE employee_id = ANY($1)
		ORDER BY employee_id, service_id
	`, ids)
	if err != nil {
		return fmt.Errorf("ошибка получения услуг сотрудников: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var employeeID, serviceID int64
		if err := rows.Scan(&employeeID, &serviceID); err != nil {
			return fmt.Errorf("ошибка сканирования услуг сотрудников: %w", err)
		}
		byID[employeeID].ServiceIDs = append(byID[employeeID].ServiceIDs, serviceID)
	}

	return rows.Err()
}

func replaceEmployeeLocations(ctx context.Context, tx pgx.Tx, employeeID int64, locationIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM employee_locations WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("ошибка удаления локаций сотрудника: %w", err)
	}

	for position, locationID := range locationIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO employee_locations (employee_id, location_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (employee_id, location_id) DO NOTHING
		`, employeeID, locationID, position)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ValidationError("локация с id %d не найдена", locationID)
			}
			return fmt.Errorf("ошибка назначения локации сотруднику: %w", err)
		}
	}

	return nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	err := row.Scan(
		&employee.ID,
		&employee.FirstName,
		&employee.LastName,
		&employee.Email,
		&employee.Phone,
		&employee.Note,
		&employee.PhotoURL,
		&employee.Status,
		&employee.Schedule,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
