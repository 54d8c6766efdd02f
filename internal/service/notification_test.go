package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
)

func validNotification() domain.SaveNotificationDTO {
	return domain.SaveNotificationDTO{
		Name:      " Approved ",
		Channel:   domain.NotificationChannelEmail,
		Event:     domain.NotificationEventApproved,
		Recipient: domain.NotificationRecipientCustomer,
		Subject:   "Booking {appointment_id}",
		Body:      "Hi {client_first_name}, see you at {appointment_start_time}.",
	}
}

func TestNotificationCreateDefaultsToAllServices(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, zap.NewNop())

	dto := validNotification()
	dto.ServiceIDs = []int64{4, 5}

	_, err := svc.Create(context.Background(), dto)
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "Approved", repo.saved[0].Name)
	assert.Equal(t, domain.ServiceScopeAll, repo.saved[0].ServiceScope)
	assert.Nil(t, repo.saved[0].ServiceIDs)
}

func TestNotificationSpecificScope(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, zap.NewNop())

	dto := validNotification()
	dto.ServiceScope = domain.ServiceScopeSpecific
	_, err := svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, domain.ErrValidation)

	dto.ServiceIDs = []int64{4, 4, 0, 5}
	_, err = svc.Create(context.Background(), dto)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, repo.saved[0].ServiceIDs)
}

func TestNotificationRejectsUnknownPlaceholders(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, zap.NewNop())

	dto := validNotification()
	dto.Body = "Use {coupon_code} before {expiry_date}"

	_, err := svc.Create(context.Background(), dto)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "{coupon_code}, {expiry_date}")
}

func TestNotificationEmailNeedsSubject(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, zap.NewNop())

	dto := validNotification()
	dto.Subject = ""
	_, err := svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, domain.ErrValidation)

	dto.Channel = domain.NotificationChannelSMS
	_, err = svc.Create(context.Background(), dto)
	assert.NoError(t, err)
}

func TestNotificationUpdateNotFound(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, zap.NewNop())

	err := svc.Update(context.Background(), 3, validNotification())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationPreview(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, zap.NewNop())

	preview := svc.Preview(context.Background(), domain.NotificationPreviewDTO{
		Subject: "Booking {appointment_id}",
		Body:    "Hi {client_first_name} {promo}",
		Values:  map[string]string{"appointment_id": "17", "client_first_name": "Ivy"},
	})

	assert.Equal(t, "Booking 17", preview.Subject)
	assert.Equal(t, "Hi Ivy {promo}", preview.Body)
	assert.Equal(t, []string{"{promo}"}, preview.Unknown)

	clean := svc.Preview(context.Background(), domain.NotificationPreviewDTO{Body: "plain"})
	assert.NotNil(t, clean.Unknown)
	assert.Empty(t, clean.Unknown)
}

func TestNotificationPlaceholders(t *testing.T) {
	svc := NewNotificationService(&fakeNotificationRepo{}, zap.NewNop())

	assert.NotEmpty(t, svc.Placeholders())
}
