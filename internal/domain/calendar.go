package domain

import (
	"time"
)

type CalendarEventKind string

const (
	CalendarEventAppointment CalendarEventKind = "appointment"
	CalendarEventHoliday     CalendarEventKind = "holiday"
)

type CalendarEvent struct {
	ID         int64             `json:"id"`
	Kind       CalendarEventKind `json:"kind"`
	Title      string            `json:"title"`
	Start      time.Time         `json:"start"`
	End        time.Time         `json:"end"`
	AllDay     bool              `json:"all_day"`
	Status     AppointmentStatus `json:"status,omitempty"`
	EmployeeID *int64            `json:"employee_id,omitempty"`
	Color      string            `json:"color,omitempty"`
}

type CalendarQuery struct {
	Start      time.Time
	End        time.Time
	EmployeeID *int64
	LocationID *int64
}
