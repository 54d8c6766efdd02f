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

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

var appointmentColumns = []string{
	"a.id", "a.customer_id", "a.employee_id", "a.service_id", "a.location_id",
	"a.start_at", "a.end_at", "a.status", "a.payment_status", "a.price", "a.notes",
	"a.created_at", "a.updated_at",
	"(c.first_name || ' ' || c.last_name)", "c.email",
	"(e.first_name || ' ' || e.last_name)", "s.name", "s.color",
}

var appointmentOrder = map[domain.AppointmentSortKey]string{
	domain.AppointmentSortBookingID:      "a.id",
	domain.AppointmentSortScheduledStart: "a.start_at",
	domain.AppointmentSortCreatedAt:      "a.created_at",
	domain.AppointmentSortStatus:         "a.status",
	domain.AppointmentSortPayment:        "a.payment_status",
}

func appointmentsFrom(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
	return builder.From("appointments a").
		Join("customers c ON c.id = a.customer_id").
		Join("employees e ON e.id = a.employee_id").
		Join("services s ON s.id = a.service_id")
}

func (r *AppointmentRepo) Create(ctx context.Context, a domain.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (
			customer_id, employee_id, service_id, location_id, start_at, end_at,
			status, payment_status, price, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		a.CustomerID,
		a.EmployeeID,
		a.ServiceID,
		a.LocationID,
		a.StartAt,
		a.EndAt,
		a.Status,
		a.PaymentStatus,
		a.Price,
		a.Notes,
		time.Now(),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ValidationError("связанная запись не найдена")
		}
		return 0, fmt.Errorf("ошибка создания записи: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query, args, err := appointmentsFrom(psql.Select(appointmentColumns...)).Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("запись с id %d не найдена", id)
		}
		return nil, fmt.Errorf("ошибка получения записи: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, a domain.Appointment) error {
	query := `
		UPDATE appointments
		SET customer_id = $1, employee_id = $2, service_id = $3, location_id = $4,
		    start_at = $5, end_at = $6, status = $7, payment_status = $8, price = $9, notes = $10,
		    updated_at = $11
		WHERE id = $12
	`

	tag, err := r.db.Exec(ctx, query,
		a.CustomerID,
		a.EmployeeID,
		a.ServiceID,
		a.LocationID,
		a.StartAt,
		a.EndAt,
		a.Status,
		a.PaymentStatus,
		a.Price,
		a.Notes,
		time.Now(),
		a.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ValidationError("связанная запись не найдена")
		}
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("запись с id %d не найдена", a.ID)
	}

	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, ids []int64, status domain.AppointmentStatus) (int64, error) {
	query := `UPDATE appointments SET status = $1, updated_at = $2 WHERE id = ANY($3)`

	tag, err := r.db.Exec(ctx, query, status, time.Now(), ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("запись с id %d не найдена", id)
	}

	return nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	countQuery, countArgs, err := appointmentCountQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	query, args, err := appointmentListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	appointments, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// ListRange returns appointments overlapping [query.Start, query.End).
func (r *AppointmentRepo) ListRange(ctx context.Context, q domain.CalendarQuery) ([]domain.Appointment, error) {
	builder := appointmentsFrom(psql.Select(appointmentColumns...)).
		Where(squirrel.Lt{"a.start_at": q.End}).
		Where(squirrel.Gt{"a.end_at": q.Start}).
		OrderBy("a.start_at", "a.id")

	if q.EmployeeID != nil {
		builder = builder.Where(squirrel.Eq{"a.employee_id": *q.EmployeeID})
	}
	if q.LocationID != nil {
		builder = builder.Where(squirrel.Eq{"a.location_id": *q.LocationID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	return r.query(ctx, query, args...)
}

func (r *AppointmentRepo) query(ctx context.Context, query string, args ...interface{}) ([]domain.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	appointments := []domain.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования результатов: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}

func appointmentWhere(f domain.AppointmentFilter) squirrel.And {
	where := squirrel.And{}

	if f.ID != nil {
		where = append(where, squirrel.Eq{"a.id": *f.ID})
	}
	if f.DateRange.From != nil {
		where = append(where, squirrel.GtOrEq{"a.start_at": *f.DateRange.From})
	}
	if f.DateRange.To != nil {
		where = append(where, squirrel.LtOrEq{"a.start_at": *f.DateRange.To})
	}
	if f.CreatedRange.From != nil {
		where = append(where, squirrel.GtOrEq{"a.created_at": *f.CreatedRange.From})
	}
	if f.CreatedRange.To != nil {
		where = append(where, squirrel.LtOrEq{"a.created_at": *f.CreatedRange.To})
	}
	if f.CustomerSearch != nil {
		p := likePattern(*f.CustomerSearch)
		where = append(where, squirrel.Or{
			squirrel.Expr("(c.first_name || ' ' || c.last_name) ILIKE ?", p),
			squirrel.Expr("c.email ILIKE ?", p),
			squirrel.Expr("c.phone ILIKE ?", p),
		})
	}
	if f.CustomerID != nil {
		where = append(where, squirrel.Eq{"a.customer_id": *f.CustomerID})
	}
	if f.EmployeeID != nil {
		where = append(where, squirrel.Eq{"a.employee_id": *f.EmployeeID})
	}
	if f.ServiceID != nil {
		where = append(where, squirrel.Eq{"a.service_id": *f.ServiceID})
	}
	if f.LocationID != nil {
		where = append(where, squirrel.Eq{"a.location_id": *f.LocationID})
	}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"a.status": *f.Status})
	}

	return where
}

func appointmentCountQuery(f domain.AppointmentFilter) squirrel.SelectBuilder {
	return appointmentsFrom(psql.Select("COUNT(*)")).Where(appointmentWhere(f))
}

func appointmentListQuery(f domain.AppointmentFilter) squirrel.SelectBuilder {
	column, ok := appointmentOrder[f.SortKey]
	if !ok {
		column = appointmentOrder[domain.AppointmentSortScheduledStart]
	}
	direction := sqlDirection(f.SortDirection)

	builder := appointmentsFrom(psql.Select(appointmentColumns...)).
		Where(appointmentWhere(f)).
		OrderBy(column+" "+direction, "a.id "+direction)

	if f.PageSize > 0 {
		builder = builder.Limit(uint64(f.Limit())).Offset(uint64(f.Offset()))
	}

	return builder
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.EmployeeID,
		&a.ServiceID,
		&a.LocationID,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&a.PaymentStatus,
		&a.Price,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.CustomerName,
		&a.CustomerEmail,
		&a.EmployeeName,
		&a.ServiceName,
		&a.ServiceColor,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
