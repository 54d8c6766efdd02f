package service

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
)

func TestLocationCreateValidates(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), domain.SaveLocationDTO{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), domain.SaveLocationDTO{Name: "Main", Phone: "call me"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	id, err := svc.Create(context.Background(), domain.SaveLocationDTO{Name: " Main ", Phone: "+1 555 010 2000"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, "Main", repo.locations[0].Name)
	assert.Equal(t, "+15550102000", repo.locations[0].Phone)
}

func TestLocationSaveBusinessHours(t *testing.T) {
	repo := &fakeLocationRepo{locations: []domain.Location{{ID: 3, Name: "Main"}}}
	svc := NewLocationService(repo, zap.NewNop())

	raw := map[string]any{
		"1": map[string]any{"start_time": "09:00:00", "end_time": "18:00"},
		"6": map[string]any{"is_off_day": true},
		"9": map[string]any{"start": "10:00", "end": "12:00"},
	}

	week, err := svc.SaveBusinessHours(context.Background(), 3, raw)
	require.NoError(t, err)

	assert.Len(t, week, 7)
	assert.Equal(t, "09:00", week[1].StartTime)
	assert.Equal(t, "18:00", week[1].EndTime)
	assert.True(t, week[6].IsOffDay)
	assert.Equal(t, week, repo.hours[3])

	_, err = svc.SaveBusinessHours(context.Background(), 99, raw)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHolidayCreateUsesSettingsTimezone(t *testing.T) {
	settings := &fakeSettingsRepo{settings: ptr(domain.DefaultSettings())}
	settings.settings.Timezone = "Asia/Tokyo"
	repo := &fakeHolidayRepo{}
	svc := NewHolidayService(repo, NewSettingsService(settings, zap.NewNop()), zap.NewNop())

	_, err := svc.Create(context.Background(), domain.SaveHolidayDTO{Date: "2024-12-31", Name: " New Year's Eve ", Recurring: true})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, "New Year's Eve", saved.Name)
	assert.True(t, saved.Recurring)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.True(t, saved.Date.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, tokyo)))
}

func TestHolidayRejects(t *testing.T) {
	svc := NewHolidayService(&fakeHolidayRepo{}, NewSettingsService(&fakeSettingsRepo{}, zap.NewNop()), zap.NewNop())

	_, err := svc.Create(context.Background(), domain.SaveHolidayDTO{Date: "someday", Name: "Party"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), domain.SaveHolidayDTO{Date: "2024-01-01", Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.Update(context.Background(), 5, domain.SaveHolidayDTO{Date: "2024-01-01", Name: "Party"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
