package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

func ptr[T any](v T) *T {
	return &v
}

func TestAppointmentListQueryDefaults(t *testing.T) {
	query, args, err := appointmentListQuery(domain.AppointmentFilter{
		SortKey:       domain.AppointmentSortScheduledStart,
		SortDirection: domain.SortDesc,
		Page:          1,
		PageSize:      20,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM appointments a JOIN customers c ON c.id = a.customer_id")
	assert.Contains(t, query, "ORDER BY a.start_at DESC, a.id DESC")
	assert.Contains(t, query, "LIMIT 20 OFFSET 0")
	assert.Empty(t, args)
}

func TestAppointmentListQueryHugePageKeepsOffsetInRange(t *testing.T) {
	f := filter.BuildAppointmentFilter(filter.Values{"paged": "9223372036854775807"}, time.UTC, 20)

	query, _, err := appointmentListQuery(f).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, fmt.Sprintf("LIMIT 20 OFFSET %d", (filter.MaxPage-1)*20))
}

func TestAppointmentListQueryFilters(t *testing.T) {
	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	status := domain.AppointmentStatusApproved

	query, args, err := appointmentListQuery(domain.AppointmentFilter{
		DateRange:      domain.TimeRange{From: &from, To: &to},
		CustomerSearch: ptr("50%_off"),
		EmployeeID:     ptr(int64(3)),
		Status:         &status,
		SortKey:        domain.AppointmentSortPayment,
		SortDirection:  domain.SortAsc,
		Page:           3,
		PageSize:       10,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "a.start_at >= $1")
	assert.Contains(t, query, "a.start_at <= $2")
	assert.Contains(t, query, "(c.first_name || ' ' || c.last_name) ILIKE $3")
	assert.Contains(t, query, "c.phone ILIKE $5")
	assert.Contains(t, query, "a.employee_id = $6")
	assert.Contains(t, query, "a.status = $7")
	assert.Contains(t, query, "ORDER BY a.payment_status ASC, a.id ASC")
	assert.Contains(t, query, "LIMIT 10 OFFSET 20")

	require.Len(t, args, 7)
	assert.Equal(t, from, args[0])
	assert.Equal(t, to, args[1])
	assert.Equal(t, `%50\%\_off%`, args[2])
	assert.Equal(t, int64(3), args[5])
	assert.Equal(t, status, args[6])
}

func TestAppointmentListQueryUnknownSortFallsBack(t *testing.T) {
	query, _, err := appointmentListQuery(domain.AppointmentFilter{SortKey: "a.id; DROP TABLE", Page: 1, PageSize: 5}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY a.start_at DESC, a.id DESC")
	assert.NotContains(t, query, "DROP")
}

func TestAppointmentCountQuerySharesFilter(t *testing.T) {
	query, args, err := appointmentCountQuery(domain.AppointmentFilter{ID: ptr(int64(15)), PageSize: 20, Page: 2}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "SELECT COUNT(*) FROM appointments a")
	assert.Contains(t, query, "WHERE (a.id = $1)")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []interface{}{int64(15)}, args)
}

func TestCustomerListQuery(t *testing.T) {
	query, args, err := customerListQuery(domain.CustomerFilter{
		Search:        ptr("ann"),
		SortKey:       domain.CustomerSortName,
		SortDirection: domain.SortAsc,
		Page:          2,
		PageSize:      25,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "c.email ILIKE $2")
	assert.Contains(t, query, "ORDER BY c.first_name ASC, c.last_name ASC, c.id ASC")
	assert.Contains(t, query, "LIMIT 25 OFFSET 25")
	assert.Equal(t, []interface{}{"%ann%", "%ann%", "%ann%"}, args)
}

func TestHolidayListQueryKeepsRecurring(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := holidayListQuery(domain.HolidayFilter{LocationID: ptr(int64(2)), From: &from, To: &to}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "(location_id IS NULL OR location_id = $1)")
	assert.Contains(t, query, "(recurring = $2 OR (date >= $3 AND date <= $4))")
	assert.Equal(t, []interface{}{int64(2), true, from, to}, args)
}

func TestServiceListQuery(t *testing.T) {
	query, args, err := serviceListQuery(domain.ServiceFilter{EmployeeID: ptr(int64(4))}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "sp.employee_id = $1")
	assert.Equal(t, []interface{}{int64(4)}, args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%a\_b\%c\\%`, likePattern(` a_b%c\ `))
}
