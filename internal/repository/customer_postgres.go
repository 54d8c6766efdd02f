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

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{
		db: db,
	}
}

var customerColumns = []string{
	"c.id", "c.first_name", "c.last_name", "c.email", "c.phone", "c.note", "c.birthday", "c.created_at", "c.updated_at",
}

var customerOrder = map[domain.CustomerSortKey][]string{
	domain.CustomerSortID:        {"c.id"},
	domain.CustomerSortName:      {"c.first_name", "c.last_name"},
	domain.CustomerSortEmail:     {"c.email"},
	domain.CustomerSortCreatedAt: {"c.created_at"},
}

func (r *CustomerRepo) Create(ctx context.Context, customer domain.Customer) (int64, error) {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone, note, birthday, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Note,
		customer.Birthday,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания клиента: %w", err)
	}

	return id, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers c").Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError("клиент с id %d не найден", id)
		}
		return nil, fmt.Errorf("ошибка получения клиента: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepo) Update(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, phone = $4, note = $5, birthday = $6, updated_at = $7
		WHERE id = $8
	`

	tag, err := r.db.Exec(ctx, query,
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.Note,
		customer.Birthday,
		time.Now(),
		customer.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления клиента: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("клиент с id %d не найден", customer.ID)
	}

	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления клиента: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError("клиент с id %d не найден", id)
	}

	return nil
}

func (r *CustomerRepo) List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error) {
	countQuery, countArgs, err := customerCountQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета клиентов: %w", err)
	}

	query, args, err := customerListQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования результатов: %w", err)
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return customers, total, nil
}

func customerWhere(filter domain.CustomerFilter) squirrel.And {
	where := squirrel.And{}
	if filter.Search != nil {
		p := likePattern(*filter.Search)
		where = append(where, squirrel.Or{
			squirrel.Expr("(c.first_name || ' ' || c.last_name) ILIKE ?", p),
			squirrel.Expr("c.email ILIKE ?", p),
			squirrel.Expr("c.phone ILIKE ?", p),
		})
	}
	return where
}

func customerCountQuery(filter domain.CustomerFilter) squirrel.SelectBuilder {
	return psql.Select("COUNT(*)").From("customers c").Where(customerWhere(filter))
}

func customerListQuery(filter domain.CustomerFilter) squirrel.SelectBuilder {
	columns, ok := customerOrder[filter.SortKey]
	if !ok {
		columns = customerOrder[domain.CustomerSortName]
	}
	direction := sqlDirection(filter.SortDirection)

	orderBy := make([]string, 0, len(columns)+1)
	for _, column := range columns {
		orderBy = append(orderBy, column+" "+direction)
	}
	orderBy = append(orderBy, "c.id "+direction)

	return psql.Select(customerColumns...).
		From("customers c").
		Where(customerWhere(filter)).
		OrderBy(orderBy...).
		Limit(uint64(filter.Limit())).
		Offset(uint64(filter.Offset()))
}

func sqlDirection(direction domain.SortDirection) string {
	if direction == domain.SortAsc {
		return "ASC"
	}
	return "DESC"
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.Note,
		&customer.Birthday,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
