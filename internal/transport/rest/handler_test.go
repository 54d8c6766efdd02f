package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookadmin/config"
	"bookadmin/internal/domain"
	"bookadmin/internal/flash"
	"bookadmin/internal/service"
)

type fakeAuthService struct {
	service.AuthService
}

func (fakeAuthService) ParseToken(_ context.Context, token string) (int64, domain.UserRole, error) {
	switch token {
	case "admin-token":
		return 1, domain.UserRoleAdmin, nil
	case "manager-token":
		return 2, domain.UserRoleManager, nil
	}
	return 0, "", service.ErrInvalidToken
}

func (fakeAuthService) Login(_ context.Context, dto domain.LoginRequest, _, _ string) (*domain.Tokens, error) {
	if dto.Password != "secret-password" {
		return nil, service.ErrInvalidCredentials
	}
	return &domain.Tokens{AccessToken: "a", RefreshToken: "r"}, nil
}

type fakeEmployeeService struct {
	service.EmployeeService
	deleted []int64
}

func (f *fakeEmployeeService) Create(_ context.Context, dto domain.CreateEmployeeDTO) (int64, error) {
	if dto.LastName == "Taken" {
		return 0, domain.ConflictError("сотрудник с таким email уже существует")
	}
	return 42, nil
}

func (f *fakeEmployeeService) Delete(_ context.Context, id int64) error {
	if id == 404 {
		return domain.NotFoundError("сотрудник не найден")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEmployeeService) SaveSchedule(_ context.Context, _ int64, raw any) (domain.WeeklySchedule, error) {
	if _, ok := raw.(map[string]any); !ok {
		return nil, domain.ValidationError("расписание должно быть объектом")
	}
	return domain.NewWeeklySchedule(), nil
}

type fakeSettingsService struct {
	service.SettingsService
	err error
}

func (f *fakeSettingsService) Get(context.Context) (*domain.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	settings := domain.DefaultSettings()
	settings.Timezone = "Europe/Berlin"
	settings.DefaultPageSize = 15
	return &settings, nil
}

type fakeAppointmentService struct {
	service.AppointmentService
	filter domain.AppointmentFilter
}

func (f *fakeAppointmentService) List(_ context.Context, filter domain.AppointmentFilter) (*domain.Page[domain.Appointment], error) {
	f.filter = filter
	page := domain.NewPage([]domain.Appointment{{ID: 9}}, 31, filter.Page, filter.PageSize)
	return &page, nil
}

type testServer struct {
	router       *gin.Engine
	notices      *flash.MemoryStore
	employees    *fakeEmployeeService
	appointments *fakeAppointmentService
	settings     *fakeSettingsService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		notices:      flash.NewMemoryStore(time.Minute),
		employees:    &fakeEmployeeService{},
		appointments: &fakeAppointmentService{},
		settings:     &fakeSettingsService{},
	}

	services := &service.Services{
		Auth:        fakeAuthService{},
		Employee:    ts.employees,
		Appointment: ts.appointments,
		Settings:    ts.settings,
	}

	h := NewHandler(services, ts.notices, zap.NewNop(), &config.Config{})
	ts.router = gin.New()
	h.InitRoutes(ts.router)

	return ts
}

func (ts *testServer) do(method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/v1/notices", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/v1/notices", "forged", "").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notices", nil)
	req.Header.Set("Authorization", "Token admin-token")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"admin@salon.example","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"admin@salon.example","password":"secret-password"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a", decode(t, w)["data"].(map[string]any)["access_token"])

	w = ts.do(http.MethodPost, "/api/v1/auth/login", "", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodDelete, "/api/v1/employees/5", "manager-token", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, ts.employees.deleted)

	w = ts.do(http.MethodDelete, "/api/v1/employees/5", "admin-token", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{5}, ts.employees.deleted)
}

func TestMutationLeavesNotice(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/employees", "manager-token",
		`{"first_name":"Ann","last_name":"Lee","email":"ann@salon.example"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "сотрудник создан", decode(t, w)["message"])

	w = ts.do(http.MethodGet, "/api/v1/notices", "manager-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	notice := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "success", notice["type"])
	assert.Equal(t, "сотрудник создан", notice["message"])

	w = ts.do(http.MethodGet, "/api/v1/notices", "manager-token", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// notices are per user
	w = ts.do(http.MethodGet, "/api/v1/notices", "admin-token", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMutationRedirects(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/employees?redirect_to=/admin/employees%3Fpaged%3D2", "admin-token",
		`{"first_name":"Ann","last_name":"Lee","email":"ann@salon.example"}`)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/employees?paged=2", w.Header().Get("Location"))

	w = ts.do(http.MethodPost, "/api/v1/employees?redirect_to=/admin/employees", "admin-token",
		`{"first_name":"Ann","last_name":"Taken","email":"ann@salon.example"}`)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	notice, err := ts.notices.Take(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, flash.NoticeError, notice.Type)
	assert.Equal(t, string(domain.ErrorCodeConflict), notice.Code)
}

func TestMutationIgnoresForeignRedirect(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/employees?redirect_to=//evil.example/phish", "admin-token",
		`{"first_name":"Ann","last_name":"Lee","email":"ann@salon.example"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestServiceErrorStatus(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/employees", "admin-token",
		`{"first_name":"Ann","last_name":"Taken","email":"ann@salon.example"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decode(t, w)["reason"])

	w = ts.do(http.MethodDelete, "/api/v1/employees/404", "admin-token", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPut, "/api/v1/employees/3/schedule", "admin-token", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decode(t, w)["reason"])

	w = ts.do(http.MethodDelete, "/api/v1/employees/abc", "admin-token", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveScheduleAcceptsLooseShape(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/api/v1/employees/3/schedule", "manager-token",
		`{"monday":{"start":"09:00","end":"17:00"},"7":null}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAppointmentListUsesSettings(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/appointments?date_from=2024-03-01&paged=2&orderby=bogus", "manager-token", "")
	require.Equal(t, http.StatusOK, w.Code)

	f := ts.appointments.filter
	assert.Equal(t, 15, f.PageSize)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, domain.AppointmentSortScheduledStart, f.SortKey)
	require.NotNil(t, f.DateRange.From)
	assert.Equal(t, "Europe/Berlin", f.DateRange.From.Location().String())

	body := decode(t, w)
	assert.Equal(t, float64(31), body["total_count"])
	assert.Equal(t, float64(3), body["total_pages"])
}

func TestAppointmentListFallsBackToDefaultSettings(t *testing.T) {
	ts := newTestServer(t)
	ts.settings.err = errors.New("ошибка при получении настроек")

	w := ts.do(http.MethodGet, "/api/v1/appointments", "manager-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.DefaultSettings().DefaultPageSize, ts.appointments.filter.PageSize)
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		target string
		want   string
		ok     bool
	}{
		{"/admin/appointments", "/admin/appointments", true},
		{"/admin/appointments?status=pending", "/admin/appointments?status=pending", true},
		{"", "", false},
		{"admin", "", false},
		{"//evil.example", "", false},
		{"/\\evil.example", "", false},
		{"https://evil.example/x", "", false},
		{"javascript:alert(1)", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, ok := safeRedirect(tt.target)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusFor(t *testing.T) {
	status, message, reason := statusFor(domain.ValidationError("неверная длительность"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "неверная длительность", message)
	assert.Equal(t, domain.ErrorCodeValidation, reason)

	status, _, reason = statusFor(errors.New("ошибка при сохранении"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, reason)
}
