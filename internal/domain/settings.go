package domain

import (
	"time"
)

type Settings struct {
	BusinessName             string            `json:"business_name"`
	BusinessEmail            string            `json:"business_email"`
	BusinessPhone            string            `json:"business_phone"`
	Timezone                 string            `json:"timezone"`
	DateFormat               string            `json:"date_format"`
	TimeFormat               string            `json:"time_format"`
	Currency                 string            `json:"currency"`
	DefaultPageSize          int               `json:"default_page_size"`
	DefaultAppointmentStatus AppointmentStatus `json:"default_appointment_status"`
	UpdatedAt                time.Time         `json:"updated_at"`
}

func DefaultSettings() Settings {
	return Settings{
		Timezone:                 "UTC",
		DateFormat:               "2006-01-02",
		TimeFormat:               "15:04",
		Currency:                 "USD",
		DefaultPageSize:          20,
		DefaultAppointmentStatus: AppointmentStatusPending,
	}
}

func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type UpdateSettingsDTO struct {
	BusinessName             *string            `json:"business_name"`
	BusinessEmail            *string            `json:"business_email" binding:"omitempty,email"`
	BusinessPhone            *string            `json:"business_phone"`
	Timezone                 *string            `json:"timezone"`
	DateFormat               *string            `json:"date_format"`
	TimeFormat               *string            `json:"time_format"`
	Currency                 *string            `json:"currency" binding:"omitempty,len=3"`
	DefaultPageSize          *int               `json:"default_page_size"`
	DefaultAppointmentStatus *AppointmentStatus `json:"default_appointment_status" binding:"omitempty,oneof=pending approved"`
}

type Location struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	Phone         string         `json:"phone"`
	BusinessHours WeeklySchedule `json:"business_hours"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type SaveLocationDTO struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Holiday struct {
	ID         int64     `json:"id"`
	LocationID *int64    `json:"location_id"`
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`
	Recurring  bool      `json:"recurring"`
	CreatedAt  time.Time `json:"created_at"`
}

// OccursOn reports whether the holiday falls on day; recurring holidays match month and day of any year.
func (h Holiday) OccursOn(day time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == day.Month() && h.Date.Day() == day.Day()
	}
	return h.Date.Year() == day.Year() && h.Date.YearDay() == day.YearDay()
}

type SaveHolidayDTO struct {
	LocationID *int64 `json:"location_id"`
	Date       string `json:"date" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Recurring  bool   `json:"recurring"`
}

type HolidayFilter struct {
	LocationID *int64     `json:"location_id"`
	From       *time.Time `json:"from"`
	To         *time.Time `json:"to"`
}
