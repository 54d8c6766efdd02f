package domain

import (
	"time"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCategoryDTO struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

type UpdateCategoryDTO struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

type ServiceStatus string

const (
	ServiceStatusVisible ServiceStatus = "visible"
	ServiceStatusHidden  ServiceStatus = "hidden"
)

// ServiceProvider links an employee to a service with a display order.
type ServiceProvider struct {
	EmployeeID int64 `json:"employee_id"`
	Order      int   `json:"order"`
}

type Service struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Duration    int               `json:"duration"`
	Price       float64           `json:"price"`
	Capacity    int               `json:"capacity"`
	Color       string            `json:"color"`
	Status      ServiceStatus     `json:"status"`
	Categories  []Category        `json:"categories"`
	Providers   []ServiceProvider `json:"providers"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreateServiceDTO struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Duration    int               `json:"duration" binding:"required"`
	Price       float64           `json:"price"`
	Capacity    int               `json:"capacity"`
	Color       string            `json:"color"`
	Status      ServiceStatus     `json:"status" binding:"omitempty,oneof=visible hidden"`
	CategoryIDs []int64           `json:"category_ids"`
	Providers   []ServiceProvider `json:"providers"`
}

type UpdateServiceDTO struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Duration    *int               `json:"duration"`
	Price       *float64           `json:"price"`
	Capacity    *int               `json:"capacity"`
	Color       *string            `json:"color"`
	Status      *ServiceStatus     `json:"status" binding:"omitempty,oneof=visible hidden"`
	CategoryIDs *[]int64           `json:"category_ids"`
	Providers   *[]ServiceProvider `json:"providers"`
}

type ServiceFilter struct {
	Search     *string        `json:"search"`
	CategoryID *int64         `json:"category_id"`
	EmployeeID *int64         `json:"employee_id"`
	Status     *ServiceStatus `json:"status"`
}

// ServiceGroup is one category bucket of the service picker. Category is nil for uncategorized.
type ServiceGroup struct {
	Category *Category `json:"category"`
	Services []Service `json:"services"`
}

type ServiceGroupState struct {
	ServiceGroup
	AllSelected bool `json:"all_selected"`
}
