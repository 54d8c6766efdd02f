package domain

import (
	"time"
)

type Customer struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Note      string     `json:"note"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type CreateCustomerDTO struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Phone     string  `json:"phone"`
	Note      string  `json:"note"`
	Birthday  *string `json:"birthday"`
}

type UpdateCustomerDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Note      *string `json:"note"`
	Birthday  *string `json:"birthday"`
}

type CustomerSortKey string

const (
	CustomerSortID        CustomerSortKey = "id"
	CustomerSortName      CustomerSortKey = "name"
	CustomerSortEmail     CustomerSortKey = "email"
	CustomerSortCreatedAt CustomerSortKey = "created_at"
)

type CustomerFilter struct {
	Search        *string         `json:"search"`
	SortKey       CustomerSortKey `json:"sort_key"`
	SortDirection SortDirection   `json:"sort_direction"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
}

func (f CustomerFilter) Limit() int {
	return f.PageSize
}

func (f CustomerFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}
