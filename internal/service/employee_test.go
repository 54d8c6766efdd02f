package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/storage"
)

type employeeFixture struct {
	svc       *EmployeeServiceImpl
	employees *fakeEmployeeRepo
	storage   *fakeStorage
}

func newEmployeeFixture(employees ...domain.Employee) employeeFixture {
	hall := domain.NewWeeklySchedule()
	hall[1] = domain.DaySchedule{StartTime: "09:00", EndTime: "17:00", Breaks: []domain.BreakInterval{}}

	locations := &fakeLocationRepo{locations: []domain.Location{
		{ID: 3, Name: "Hall", BusinessHours: hall},
		{ID: 7, Name: "Annex", BusinessHours: domain.NewWeeklySchedule()},
	}}
	categories := &fakeCategoryRepo{categories: []domain.Category{
		{ID: 1, Name: "Hair"},
		{ID: 2, Name: "Nails"},
	}}
	services := &fakeServiceRepo{services: []domain.Service{
		{ID: 10, Name: "Cut", Categories: []domain.Category{{ID: 1, Name: "Hair"}}},
		{ID: 11, Name: "Color", Categories: []domain.Category{{ID: 1, Name: "Hair"}}},
		{ID: 12, Name: "Gift card"},
	}}

	repo := newFakeEmployeeRepo(employees...)
	files := &fakeStorage{}

	return employeeFixture{
		svc:       NewEmployeeService(repo, locations, categories, services, files, zap.NewNop()),
		employees: repo,
		storage:   files,
	}
}

func TestEmployeeFormFallsBackToLocationHours(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{
		ID:          1,
		FirstName:   "Anna",
		LocationIDs: []int64{3},
		ServiceIDs:  []int64{10, 11},
		Schedule:    domain.WeeklySchedule{},
	})

	form, err := f.svc.Form(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "09:00", form.Schedule[1].StartTime)
	assert.True(t, form.Schedule[2].IsOffDay)
	assert.Len(t, form.Schedule, 7)

	require.Len(t, form.ServiceGroups, 3)
	assert.Equal(t, "Hair", form.ServiceGroups[0].Category.Name)
	assert.True(t, form.ServiceGroups[0].AllSelected)
	assert.Equal(t, "Nails", form.ServiceGroups[1].Category.Name)
	assert.False(t, form.ServiceGroups[1].AllSelected)
	assert.Nil(t, form.ServiceGroups[2].Category)
	assert.False(t, form.ServiceGroups[2].AllSelected)
}

func TestEmployeeFormKeepsOwnSchedule(t *testing.T) {
	own := domain.NewWeeklySchedule()
	own[5] = domain.DaySchedule{StartTime: "12:00", EndTime: "20:00", Breaks: []domain.BreakInterval{}}

	f := newEmployeeFixture(domain.Employee{ID: 1, LocationIDs: []int64{3}, Schedule: own})

	form, err := f.svc.Form(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "12:00", form.Schedule[5].StartTime)
	assert.True(t, form.Schedule[1].IsOffDay)
}

func TestEmployeeFormNotFound(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.svc.Form(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeSaveScheduleNormalizes(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1})

	raw := map[string]any{
		"1": map[string]any{"start": "09:00:00", "end": "18:00", "breaks": []any{
			map[string]any{"start_time": "12:00", "end_time": "13:00"},
			map[string]any{"start_time": "bad"},
		}},
		"2": map[string]any{"is_off_day": "1", "start_time": "09:00", "end_time": "18:00"},
		"9": map[string]any{"start_time": "09:00", "end_time": "18:00"},
	}

	week, err := f.svc.SaveSchedule(context.Background(), 1, raw)
	require.NoError(t, err)

	assert.Equal(t, domain.DaySchedule{
		StartTime: "09:00",
		EndTime:   "18:00",
		Breaks:    []domain.BreakInterval{{StartTime: "12:00", EndTime: "13:00"}},
	}, week[1])
	assert.True(t, week[2].IsOffDay)
	assert.Len(t, week, 7)
	assert.Equal(t, week, f.employees.schedules[1])
}

func TestEmployeeSetServicesDeduplicates(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1})

	err := f.svc.SetServices(context.Background(), 1, []int64{10, 0, 11, 10, -1})
	require.NoError(t, err)

	assert.Equal(t, []int64{10, 11}, f.employees.services[1])
}

func TestEmployeeCreateValidatesPhone(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.svc.Create(context.Background(), domain.CreateEmployeeDTO{FirstName: "anna", LastName: "kay", Email: "A@B.io", Phone: "12"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	id, err := f.svc.Create(context.Background(), domain.CreateEmployeeDTO{FirstName: "anna", LastName: "kay", Email: " A@B.io ", Phone: "+49 30 1234567"})
	require.NoError(t, err)

	created := f.employees.employees[id]
	assert.Equal(t, "Anna", created.FirstName)
	assert.Equal(t, "a@b.io", created.Email)
	assert.Equal(t, "+49301234567", created.Phone)
	assert.Equal(t, domain.EmployeeStatusActive, created.Status)
}

func TestEmployeeUploadPhotoReplacesOld(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1, PhotoURL: "https://cdn.example/employees/old.png"})

	url, err := f.svc.UploadPhoto(context.Background(), 1, []byte("png"), "new.png")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/employees/new.png", url)
	assert.Equal(t, url, f.employees.photos[1])
	assert.Equal(t, []string{"https://cdn.example/employees/old.png"}, f.storage.deleted)
}

func TestEmployeeUploadPhotoRejectsNonImage(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1})
	f.storage.err = storage.ErrNotImage

	_, err := f.svc.UploadPhoto(context.Background(), 1, []byte("text"), "notes.txt")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEmployeeUploadPhotoHidesStorageError(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1})
	f.storage.err = errors.New("connection refused")

	_, err := f.svc.UploadPhoto(context.Background(), 1, []byte("png"), "a.png")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestEmployeeDeletePhotoWithoutPhoto(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1})

	err := f.svc.DeletePhoto(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmployeeDeleteWithoutFileStorage(t *testing.T) {
	repo := newFakeEmployeeRepo(domain.Employee{ID: 1, PhotoURL: "https://cdn.example/employees/old.png"})
	svc := NewEmployeeService(repo, &fakeLocationRepo{}, &fakeCategoryRepo{}, &fakeServiceRepo{}, nil, zap.NewNop())

	require.NotPanics(t, func() {
		require.NoError(t, svc.Delete(context.Background(), 1))
	})
	assert.NotContains(t, repo.employees, int64(1))
}

func TestEmployeeDeleteRemovesPhoto(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1, PhotoURL: "https://cdn.example/employees/old.png"})

	require.NoError(t, f.svc.Delete(context.Background(), 1))
	assert.Equal(t, []string{"https://cdn.example/employees/old.png"}, f.storage.deleted)
}

func TestEmployeeListPage(t *testing.T) {
	f := newEmployeeFixture(domain.Employee{ID: 1}, domain.Employee{ID: 2}, domain.Employee{ID: 3})

	page, err := f.svc.List(context.Background(), domain.EmployeeFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
}
