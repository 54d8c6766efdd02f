package filter

import (
	"strings"
	"time"

	"bookadmin/internal/domain"
)

var appointmentSortKeys = map[string]domain.AppointmentSortKey{
	"booking_id":      domain.AppointmentSortBookingID,
	"scheduled_start": domain.AppointmentSortScheduledStart,
	"created_at":      domain.AppointmentSortCreatedAt,
	"status":          domain.AppointmentSortStatus,
	"payment":         domain.AppointmentSortPayment,
}

// BuildAppointmentFilter turns list screen query parameters into a filter. It never fails:
// anything malformed falls back to its default or is left unset.
func BuildAppointmentFilter(params Params, loc *time.Location, defaultPageSize int) domain.AppointmentFilter {
	f := domain.AppointmentFilter{
		ID:             positiveID(params, "id"),
		CustomerSearch: optionalString(params, "search"),
		CustomerID:     positiveID(params, "customer_id"),
		EmployeeID:     positiveID(params, "employee_id"),
		ServiceID:      positiveID(params, "service_id"),
		LocationID:     positiveID(params, "location_id"),
		DateRange: domain.TimeRange{
			From: StartOfDay(params.Get("date_from"), loc),
			To:   EndOfDay(params.Get("date_to"), loc),
		},
		CreatedRange: domain.TimeRange{
			From: StartOfDay(params.Get("created_from"), loc),
			To:   EndOfDay(params.Get("created_to"), loc),
		},
		SortKey:       appointmentSortKey(str(params, "orderby")),
		SortDirection: Direction(params.Get("order"), domain.SortDesc),
		Page:          page(params, "paged"),
		PageSize:      pageSize(params, "per_page", defaultPageSize),
	}

	if status := domain.AppointmentStatus(strings.ToLower(str(params, "status"))); status.IsValid() {
		f.Status = &status
	}

	return f
}

func appointmentSortKey(value string) domain.AppointmentSortKey {
	if key, ok := appointmentSortKeys[strings.ToLower(value)]; ok {
		return key
	}
	return domain.AppointmentSortScheduledStart
}

// Direction accepts asc/desc in any case.
func Direction(value string, fallback domain.SortDirection) domain.SortDirection {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(domain.SortAsc):
		return domain.SortAsc
	case string(domain.SortDesc):
		return domain.SortDesc
	default:
		return fallback
	}
}
