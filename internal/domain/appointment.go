package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusApproved  AppointmentStatus = "approved"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
	AppointmentStatusRejected  AppointmentStatus = "rejected"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusApproved,
	AppointmentStatusCanceled,
	AppointmentStatusRejected,
	AppointmentStatusNoShow,
	AppointmentStatusCompleted,
}

func (s AppointmentStatus) IsValid() bool {
	for _, status := range AppointmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusRefunded      PaymentStatus = "refunded"
)

type Appointment struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customer_id"`
	EmployeeID    int64             `json:"employee_id"`
	ServiceID     int64             `json:"service_id"`
	LocationID    *int64            `json:"location_id"`
	StartAt       time.Time         `json:"start_at"`
	EndAt         time.Time         `json:"end_at"`
	Status        AppointmentStatus `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	Price         float64           `json:"price"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	EmployeeName  string            `json:"employee_name,omitempty"`
	ServiceName   string            `json:"service_name,omitempty"`
	ServiceColor  string            `json:"service_color,omitempty"`
}

type CreateAppointmentDTO struct {
	CustomerID    int64             `json:"customer_id" binding:"required"`
	EmployeeID    int64             `json:"employee_id" binding:"required"`
	ServiceID     int64             `json:"service_id" binding:"required"`
	LocationID    *int64            `json:"location_id"`
	StartAt       time.Time         `json:"start_at" binding:"required"`
	EndAt         *time.Time        `json:"end_at"`
	Status        AppointmentStatus `json:"status" binding:"omitempty,oneof=pending approved canceled rejected no_show completed"`
	PaymentStatus PaymentStatus     `json:"payment_status" binding:"omitempty,oneof=unpaid partially_paid paid refunded"`
	Price         *float64          `json:"price"`
	Notes         string            `json:"notes"`
}

type UpdateAppointmentDTO struct {
	CustomerID    *int64             `json:"customer_id"`
	EmployeeID    *int64             `json:"employee_id"`
	ServiceID     *int64             `json:"service_id"`
	LocationID    *int64             `json:"location_id"`
	StartAt       *time.Time         `json:"start_at"`
	EndAt         *time.Time         `json:"end_at"`
	Status        *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending approved canceled rejected no_show completed"`
	PaymentStatus *PaymentStatus     `json:"payment_status" binding:"omitempty,oneof=unpaid partially_paid paid refunded"`
	Price         *float64           `json:"price"`
	Notes         *string            `json:"notes"`
}

type BulkStatusDTO struct {
	IDs    []int64           `json:"ids" binding:"required,min=1"`
	Status AppointmentStatus `json:"status" binding:"required,oneof=pending approved canceled rejected no_show completed"`
}

type AppointmentSortKey string

const (
	AppointmentSortBookingID      AppointmentSortKey = "booking_id"
	AppointmentSortScheduledStart AppointmentSortKey = "scheduled_start"
	AppointmentSortCreatedAt      AppointmentSortKey = "created_at"
	AppointmentSortStatus         AppointmentSortKey = "status"
	AppointmentSortPayment        AppointmentSortKey = "payment"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

type TimeRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

func (r TimeRange) IsSet() bool {
	return r.From != nil || r.To != nil
}

// AppointmentFilter is built once per request from query parameters and handed to the repository as is.
type AppointmentFilter struct {
	ID             *int64             `json:"id"`
	DateRange      TimeRange          `json:"date_range"`
	CreatedRange   TimeRange          `json:"created_range"`
	CustomerSearch *string            `json:"customer_search"`
	CustomerID     *int64             `json:"customer_id"`
	EmployeeID     *int64             `json:"employee_id"`
	ServiceID      *int64             `json:"service_id"`
	LocationID     *int64             `json:"location_id"`
	Status         *AppointmentStatus `json:"status"`
	SortKey        AppointmentSortKey `json:"sort_key"`
	SortDirection  SortDirection      `json:"sort_direction"`
	Page           int                `json:"page"`
	PageSize       int                `json:"page_size"`
}

func (f AppointmentFilter) Limit() int {
	return f.PageSize
}

func (f AppointmentFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	PageSize   int `json:"page_size"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		PageSize:   pageSize,
		Page:       page,
		TotalPages: pages,
	}
}
