package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookadmin/internal/domain"
)

func TestBuildEmployeeFilter(t *testing.T) {
	f := BuildEmployeeFilter(Values{"search": " ann ", "status": "INACTIVE", "paged": "3", "per_page": "10"}, 20)

	require.NotNil(t, f.Search)
	assert.Equal(t, "ann", *f.Search)
	require.NotNil(t, f.Status)
	assert.Equal(t, domain.EmployeeStatusInactive, *f.Status)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 20, f.Offset)

	f = BuildEmployeeFilter(Values{"status": "retired"}, 0)
	assert.Nil(t, f.Status)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Equal(t, 0, f.Offset)
}

func TestBuildServiceFilter(t *testing.T) {
	f := BuildServiceFilter(Values{"category_id": "4", "employee_id": "x", "status": "hidden"})

	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(4), *f.CategoryID)
	assert.Nil(t, f.EmployeeID)
	require.NotNil(t, f.Status)
	assert.Equal(t, domain.ServiceStatusHidden, *f.Status)

	assert.Nil(t, BuildServiceFilter(Values{"status": "draft"}).Status)
}

func TestBuildHolidayFilter(t *testing.T) {
	f := BuildHolidayFilter(Values{"from": "2024-12-01", "to": "31.12.2024", "location_id": "2"}, time.UTC)

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), *f.To)
	assert.Equal(t, int64(2), *f.LocationID)
}

func TestBuildCalendarQuery(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		params    Values
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "explicit range is inclusive",
			params:    Values{"start": "2024-03-01", "end": "2024-03-31"},
			wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "defaults to a week from today",
			params:    Values{},
			wantStart: time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end before start is ignored",
			params:    Values{"start": "2024-03-10", "end": "2024-03-01"},
			wantStart: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "single day",
			params:    Values{"start": "2024-03-10", "end": "2024-03-10"},
			wantStart: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildCalendarQuery(tt.params, time.UTC, now)

			assert.Equal(t, tt.wantStart, q.Start)
			assert.Equal(t, tt.wantEnd, q.End)
		})
	}
}

func TestBuildCalendarQueryIds(t *testing.T) {
	q := BuildCalendarQuery(Values{"employee_id": "7", "location_id": "-1"}, nil, time.Now())

	require.NotNil(t, q.EmployeeID)
	assert.Equal(t, int64(7), *q.EmployeeID)
	assert.Nil(t, q.LocationID)
}

func TestBuildNotificationFilter(t *testing.T) {
	f := BuildNotificationFilter(Values{"event": "Appointment_Reminder", "channel": "sms", "recipient": "nobody"})

	require.NotNil(t, f.Event)
	assert.Equal(t, domain.NotificationEventReminder, *f.Event)
	require.NotNil(t, f.Channel)
	assert.Equal(t, domain.NotificationChannelSMS, *f.Channel)
	assert.Nil(t, f.Recipient)

	assert.Equal(t, domain.NotificationFilter{}, BuildNotificationFilter(Values{}))
}
