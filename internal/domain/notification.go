package domain

import (
	"time"
)

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "email"
	NotificationChannelSMS   NotificationChannel = "sms"
)

type NotificationEvent string

const (
	NotificationEventPending  NotificationEvent = "appointment_pending"
	NotificationEventApproved NotificationEvent = "appointment_approved"
	NotificationEventCanceled NotificationEvent = "appointment_canceled"
	NotificationEventRejected NotificationEvent = "appointment_rejected"
	NotificationEventReminder NotificationEvent = "appointment_reminder"
	NotificationEventFollowUp NotificationEvent = "appointment_follow_up"
	NotificationEventBirthday NotificationEvent = "customer_birthday"
)

type NotificationRecipient string

const (
	NotificationRecipientCustomer NotificationRecipient = "customer"
	NotificationRecipientEmployee NotificationRecipient = "employee"
	NotificationRecipientAdmin    NotificationRecipient = "admin"
)

// ServiceScope says whether a notification applies to every service or to ServiceIDs only.
type ServiceScope string

const (
	ServiceScopeAll      ServiceScope = "all"
	ServiceScopeSpecific ServiceScope = "specific"
)

type Notification struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Channel      NotificationChannel   `json:"channel"`
	Event        NotificationEvent     `json:"event"`
	Recipient    NotificationRecipient `json:"recipient"`
	Subject      string                `json:"subject"`
	Body         string                `json:"body"`
	IsActive     bool                  `json:"is_active"`
	ServiceScope ServiceScope          `json:"service_scope"`
	ServiceIDs   []int64               `json:"service_ids"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func (n Notification) AppliesTo(serviceID int64) bool {
	if n.ServiceScope != ServiceScopeSpecific {
		return true
	}
	for _, id := range n.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

type SaveNotificationDTO struct {
	Name         string                `json:"name" binding:"required"`
	Channel      NotificationChannel   `json:"channel" binding:"required,oneof=email sms"`
	Event        NotificationEvent     `json:"event" binding:"required,oneof=appointment_pending appointment_approved appointment_canceled appointment_rejected appointment_reminder appointment_follow_up customer_birthday"`
	Recipient    NotificationRecipient `json:"recipient" binding:"required,oneof=customer employee admin"`
	Subject      string                `json:"subject"`
	Body         string                `json:"body" binding:"required"`
	IsActive     bool                  `json:"is_active"`
	ServiceScope ServiceScope          `json:"service_scope" binding:"omitempty,oneof=all specific"`
	ServiceIDs   []int64               `json:"service_ids"`
}

type NotificationFilter struct {
	Event     *NotificationEvent     `json:"event"`
	Channel   *NotificationChannel   `json:"channel"`
	Recipient *NotificationRecipient `json:"recipient"`
}

type NotificationPreviewDTO struct {
	Subject string            `json:"subject"`
	Body    string            `json:"body" binding:"required"`
	Values  map[string]string `json:"values"`
}

type NotificationPreview struct {
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	Unknown []string `json:"unknown_placeholders"`
}
