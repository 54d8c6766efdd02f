package domain

import (
	"time"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

func (s EmployeeStatus) IsValid() bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive
}

type Employee struct {
	ID          int64          `json:"id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Note        string         `json:"note"`
	PhotoURL    string         `json:"photo_url"`
	Status      EmployeeStatus `json:"status"`
	LocationIDs []int64        `json:"location_ids"`
	ServiceIDs  []int64        `json:"service_ids"`
	Schedule    WeeklySchedule `json:"schedule"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type CreateEmployeeDTO struct {
	FirstName   string         `json:"first_name" binding:"required"`
	LastName    string         `json:"last_name" binding:"required"`
	Email       string         `json:"email" binding:"required,email"`
	Phone       string         `json:"phone"`
	Note        string         `json:"note"`
	Status      EmployeeStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	LocationIDs []int64        `json:"location_ids"`
}

type UpdateEmployeeDTO struct {
	FirstName   *string         `json:"first_name"`
	LastName    *string         `json:"last_name"`
	Email       *string         `json:"email" binding:"omitempty,email"`
	Phone       *string         `json:"phone"`
	Note        *string         `json:"note"`
	Status      *EmployeeStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	LocationIDs *[]int64        `json:"location_ids"`
}

type EmployeeFilter struct {
	Search *string         `json:"search"`
	Status *EmployeeStatus `json:"status"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// EmployeeForm is everything the employee edit screen needs in one read.
type EmployeeForm struct {
	Employee      Employee            `json:"employee"`
	Schedule      WeeklySchedule      `json:"schedule"`
	ServiceGroups []ServiceGroupState `json:"service_groups"`
}
