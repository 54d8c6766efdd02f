package filter

import (
	"strings"
	"time"

	"bookadmin/internal/domain"
)

const defaultCalendarDays = 7

func BuildEmployeeFilter(params Params, defaultPageSize int) domain.EmployeeFilter {
	size := pageSize(params, "per_page", defaultPageSize)

	f := domain.EmployeeFilter{
		Search: optionalString(params, "search"),
		Limit:  size,
		Offset: (page(params, "paged") - 1) * size,
	}

	if status := domain.EmployeeStatus(strings.ToLower(str(params, "status"))); status.IsValid() {
		f.Status = &status
	}

	return f
}

func BuildServiceFilter(params Params) domain.ServiceFilter {
	f := domain.ServiceFilter{
		Search:     optionalString(params, "search"),
		CategoryID: positiveID(params, "category_id"),
		EmployeeID: positiveID(params, "employee_id"),
	}

	switch status := domain.ServiceStatus(strings.ToLower(str(params, "status"))); status {
	case domain.ServiceStatusVisible, domain.ServiceStatusHidden:
		f.Status = &status
	}

	return f
}

func BuildHolidayFilter(params Params, loc *time.Location) domain.HolidayFilter {
	return domain.HolidayFilter{
		LocationID: positiveID(params, "location_id"),
		From:       StartOfDay(params.Get("from"), loc),
		To:         EndOfDay(params.Get("to"), loc),
	}
}

// BuildCalendarQuery covers whole days from start through end inclusive. Without start the range
// begins today; without a usable end it spans a week.
func BuildCalendarQuery(params Params, loc *time.Location, now time.Time) domain.CalendarQuery {
	if loc == nil {
		loc = time.UTC
	}

	start := StartOfDay(params.Get("start"), loc)
	if start == nil {
		now = now.In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		start = &today
	}

	end := start.AddDate(0, 0, defaultCalendarDays)
	if last := StartOfDay(params.Get("end"), loc); last != nil && !last.Before(*start) {
		end = last.AddDate(0, 0, 1)
	}

	return domain.CalendarQuery{
		Start:      *start,
		End:        end,
		EmployeeID: positiveID(params, "employee_id"),
		LocationID: positiveID(params, "location_id"),
	}
}

func BuildNotificationFilter(params Params) domain.NotificationFilter {
	var f domain.NotificationFilter

	switch event := domain.NotificationEvent(strings.ToLower(str(params, "event"))); event {
	case domain.NotificationEventPending, domain.NotificationEventApproved, domain.NotificationEventCanceled,
		domain.NotificationEventRejected, domain.NotificationEventReminder, domain.NotificationEventFollowUp,
		domain.NotificationEventBirthday:
		f.Event = &event
	}

	switch channel := domain.NotificationChannel(strings.ToLower(str(params, "channel"))); channel {
	case domain.NotificationChannelEmail, domain.NotificationChannelSMS:
		f.Channel = &channel
	}

	switch recipient := domain.NotificationRecipient(strings.ToLower(str(params, "recipient"))); recipient {
	case domain.NotificationRecipientCustomer, domain.NotificationRecipientEmployee, domain.NotificationRecipientAdmin:
		f.Recipient = &recipient
	}

	return f
}
