package service

import (
	"context"
	"sort"

	"bookadmin/internal/domain"
)

type fakeEmployeeRepo struct {
	employees map[int64]*domain.Employee
	nextID    int64
	schedules map[int64]domain.WeeklySchedule
	services  map[int64][]int64
	photos    map[int64]string
}

func newFakeEmployeeRepo(employees ...domain.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		employees: map[int64]*domain.Employee{},
		schedules: map[int64]domain.WeeklySchedule{},
		services:  map[int64][]int64{},
		photos:    map[int64]string{},
	}
	for i := range employees {
		e := employees[i]
		r.employees[e.ID] = &e
		if e.ID > r.nextID {
			r.nextID = e.ID
		}
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, dto domain.CreateEmployeeDTO) (int64, error) {
	r.nextID++
	r.employees[r.nextID] = &domain.Employee{
		ID:          r.nextID,
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Status:      dto.Status,
		LocationIDs: dto.LocationIDs,
	}
	return r.nextID, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.NotFoundError("сотрудник не найден")
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, id int64, dto domain.UpdateEmployeeDTO) error {
	e := r.employees[id]
	if dto.FirstName != nil {
		e.FirstName = *dto.FirstName
	}
	if dto.Phone != nil {
		e.Phone = *dto.Phone
	}
	return nil
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, id int64) error {
	delete(r.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int, error) {
	var list []domain.Employee
	for _, e := range r.employees {
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, len(list), nil
}

func (r *fakeEmployeeRepo) UpdateSchedule(_ context.Context, id int64, schedule domain.WeeklySchedule) error {
	r.schedules[id] = schedule
	return nil
}

func (r *fakeEmployeeRepo) SetServices(_ context.Context, id int64, serviceIDs []int64) error {
	r.services[id] = serviceIDs
	return nil
}

func (r *fakeEmployeeRepo) UpdatePhoto(_ context.Context, id int64, photoURL string) error {
	r.photos[id] = photoURL
	r.employees[id].PhotoURL = photoURL
	return nil
}

type fakeLocationRepo struct {
	locations []domain.Location
	hours     map[int64]domain.WeeklySchedule
}

func (r *fakeLocationRepo) Create(_ context.Context, dto domain.SaveLocationDTO) (int64, error) {
	id := int64(len(r.locations) + 1)
	r.locations = append(r.locations, domain.Location{ID: id, Name: dto.Name, Address: dto.Address, Phone: dto.Phone})
	return id, nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	for _, l := range r.locations {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, domain.NotFoundError("филиал не найден")
}

func (r *fakeLocationRepo) Update(context.Context, int64, domain.SaveLocationDTO) error { return nil }
func (r *fakeLocationRepo) Delete(context.Context, int64) error                         { return nil }

func (r *fakeLocationRepo) List(context.Context) ([]domain.Location, error) {
	return r.locations, nil
}

func (r *fakeLocationRepo) UpdateBusinessHours(_ context.Context, id int64, hours domain.WeeklySchedule) error {
	if r.hours == nil {
		r.hours = map[int64]domain.WeeklySchedule{}
	}
	r.hours[id] = hours
	return nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (r *fakeCategoryRepo) Create(_ context.Context, dto domain.CreateCategoryDTO) (int64, error) {
	id := int64(len(r.categories) + 1)
	r.categories = append(r.categories, domain.Category{ID: id, Name: dto.Name, Position: dto.Position})
	return id, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.NotFoundError("категория не найдена")
}

func (r *fakeCategoryRepo) Update(context.Context, int64, domain.UpdateCategoryDTO) error { return nil }
func (r *fakeCategoryRepo) Delete(context.Context, int64) error                           { return nil }

func (r *fakeCategoryRepo) List(context.Context) ([]domain.Category, error) {
	return r.categories, nil
}

type fakeServiceRepo struct {
	services []domain.Service
	created  []domain.CreateServiceDTO
}

func (r *fakeServiceRepo) Create(_ context.Context, dto domain.CreateServiceDTO) (int64, error) {
	r.created = append(r.created, dto)
	return int64(len(r.services) + len(r.created)), nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, domain.NotFoundError("услуга не найдена")
}

func (r *fakeServiceRepo) Update(context.Context, int64, domain.UpdateServiceDTO) error { return nil }
func (r *fakeServiceRepo) Delete(context.Context, int64) error                          { return nil }

func (r *fakeServiceRepo) List(context.Context, domain.ServiceFilter) ([]domain.Service, error) {
	return r.services, nil
}

type fakeCustomerRepo struct {
	customers map[int64]domain.Customer
	created   []domain.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c domain.Customer) (int64, error) {
	r.created = append(r.created, c)
	return int64(len(r.created)), nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.NotFoundError("клиент не найден")
	}
	return &c, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c domain.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(context.Context, int64) error { return nil }

func (r *fakeCustomerRepo) List(_ context.Context, _ domain.CustomerFilter) ([]domain.Customer, int, error) {
	var list []domain.Customer
	for _, c := range r.customers {
		list = append(list, c)
	}
	return list, 45, nil
}

type fakeAppointmentRepo struct {
	appointments map[int64]domain.Appointment
	created      []domain.Appointment
	statusIDs    []int64
	rangeResult  []domain.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a domain.Appointment) (int64, error) {
	r.created = append(r.created, a)
	return int64(len(r.created)), nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, domain.NotFoundError("запись не найдена")
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, a domain.Appointment) error {
	r.appointments[a.ID] = a
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, ids []int64, _ domain.AppointmentStatus) (int64, error) {
	r.statusIDs = ids
	return int64(len(ids)), nil
}

func (r *fakeAppointmentRepo) Delete(context.Context, int64) error { return nil }

func (r *fakeAppointmentRepo) List(context.Context, domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	return nil, 0, nil
}

func (r *fakeAppointmentRepo) ListRange(context.Context, domain.CalendarQuery) ([]domain.Appointment, error) {
	return r.rangeResult, nil
}

type fakeHolidayRepo struct {
	holidays []domain.Holiday
	saved    []domain.Holiday
}

func (r *fakeHolidayRepo) Create(_ context.Context, h domain.Holiday) (int64, error) {
	r.saved = append(r.saved, h)
	return int64(len(r.saved)), nil
}

func (r *fakeHolidayRepo) GetByID(_ context.Context, id int64) (*domain.Holiday, error) {
	for _, h := range r.holidays {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, domain.NotFoundError("выходной день не найден")
}

func (r *fakeHolidayRepo) Update(_ context.Context, h domain.Holiday) error {
	r.saved = append(r.saved, h)
	return nil
}

func (r *fakeHolidayRepo) Delete(context.Context, int64) error { return nil }

func (r *fakeHolidayRepo) List(context.Context, domain.HolidayFilter) ([]domain.Holiday, error) {
	return r.holidays, nil
}

type fakeNotificationRepo struct {
	saved []domain.SaveNotificationDTO
}

func (r *fakeNotificationRepo) Create(_ context.Context, dto domain.SaveNotificationDTO) (int64, error) {
	r.saved = append(r.saved, dto)
	return int64(len(r.saved)), nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	if id < 1 || int(id) > len(r.saved) {
		return nil, domain.NotFoundError("уведомление не найдено")
	}
	return &domain.Notification{ID: id, Name: r.saved[id-1].Name}, nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, id int64, dto domain.SaveNotificationDTO) error {
	r.saved[id-1] = dto
	return nil
}

func (r *fakeNotificationRepo) Delete(context.Context, int64) error { return nil }

func (r *fakeNotificationRepo) List(context.Context, domain.NotificationFilter) ([]domain.Notification, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	settings *domain.Settings
}

func (r *fakeSettingsRepo) Get(context.Context) (*domain.Settings, error) {
	if r.settings == nil {
		return nil, domain.NotFoundError("настройки не сохранены")
	}
	copied := *r.settings
	return &copied, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s domain.Settings) error {
	r.settings = &s
	return nil
}

type fakeStorage struct {
	uploaded []string
	deleted  []string
	err      error
}

func (s *fakeStorage) UploadImage(_ context.Context, prefix string, _ []byte, filename string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	url := "https://cdn.example/" + prefix + "/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, dto domain.CreateUserDTO) (int64, error) {
	id := int64(len(r.users) + 1)
	r.users[dto.Email] = &domain.User{ID: id, Name: dto.Name, Email: dto.Email, PasswordHash: dto.Password, Role: dto.Role, IsActive: true}
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.NotFoundError("пользователь не найден")
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.NotFoundError("пользователь не найден")
	}
	return u, nil
}

func (r *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	return nil, nil
}

type fakeAuthRepo struct {
	sessions map[string]domain.Session
}

func (r *fakeAuthRepo) CreateSession(_ context.Context, session domain.Session) error {
	r.sessions[session.RefreshToken] = session
	return nil
}

func (r *fakeAuthRepo) GetSessionByRefreshToken(_ context.Context, token string) (*domain.Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return nil, domain.NotFoundError("сессия не найдена")
	}
	return &s, nil
}

func (r *fakeAuthRepo) DeleteSession(_ context.Context, id string) error {
	for token, s := range r.sessions {
		if s.ID == id {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeAuthRepo) DeleteSessionsByUserID(_ context.Context, userID int64) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
