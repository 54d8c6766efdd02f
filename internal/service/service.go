package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookadmin/config"
	"bookadmin/internal/domain"
	"bookadmin/internal/notification"
	"bookadmin/internal/repository"
	"bookadmin/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
}

type Services struct {
	User         UserService
	Auth         AuthService
	Employee     EmployeeService
	Customer     CustomerService
	Catalog      CatalogService
	Appointment  AppointmentService
	Calendar     CalendarService
	Notification NotificationService
	Settings     SettingsService
	Location     LocationService
	Holiday      HolidayService
}

func NewServices(deps Deps) *Services {
	settings := NewSettingsService(deps.Repos.Settings, deps.Logger)

	return &Services{
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Employee:     NewEmployeeService(deps.Repos.Employee, deps.Repos.Location, deps.Repos.Category, deps.Repos.Service, deps.FileStorage, deps.Logger),
		Customer:     NewCustomerService(deps.Repos.Customer, deps.Logger),
		Catalog:      NewCatalogService(deps.Repos.Category, deps.Repos.Service, deps.Logger),
		Appointment:  NewAppointmentService(deps.Repos.Appointment, deps.Repos.Customer, deps.Repos.Employee, deps.Repos.Service, settings, deps.Logger),
		Calendar:     NewCalendarService(deps.Repos.Appointment, deps.Repos.Holiday, settings, deps.Logger),
		Notification: NewNotificationService(deps.Repos.Notification, deps.Logger),
		Settings:     settings,
		Location:     NewLocationService(deps.Repos.Location, deps.Logger),
		Holiday:      NewHolidayService(deps.Repos.Holiday, settings, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type AuthService interface {
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type EmployeeService interface {
	Create(ctx context.Context, dto domain.CreateEmployeeDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, id int64, dto domain.UpdateEmployeeDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.EmployeeFilter) (*domain.Page[domain.Employee], error)

	Form(ctx context.Context, id int64) (*domain.EmployeeForm, error)
	SaveSchedule(ctx context.Context, id int64, raw any) (domain.WeeklySchedule, error)
	SetServices(ctx context.Context, id int64, serviceIDs []int64) error

	UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) (string, error)
	DeletePhoto(ctx context.Context, id int64) error
}

type CustomerService interface {
	Create(ctx context.Context, dto domain.CreateCustomerDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, id int64, dto domain.UpdateCustomerDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.CustomerFilter) (*domain.Page[domain.Customer], error)
}

type CatalogService interface {
	CreateCategory(ctx context.Context, dto domain.CreateCategoryDTO) (int64, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, dto domain.UpdateCategoryDTO) error
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	CreateService(ctx context.Context, dto domain.CreateServiceDTO) (int64, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	UpdateService(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	DeleteService(ctx context.Context, id int64) error
	ListServices(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error)
	Grouped(ctx context.Context, filter domain.ServiceFilter) ([]domain.ServiceGroup, error)
}

type AppointmentService interface {
	Create(ctx context.Context, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	BulkUpdateStatus(ctx context.Context, dto domain.BulkStatusDTO) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) (*domain.Page[domain.Appointment], error)
}

type CalendarService interface {
	Events(ctx context.Context, query domain.CalendarQuery) ([]domain.CalendarEvent, error)
}

type NotificationService interface {
	Create(ctx context.Context, dto domain.SaveNotificationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	Update(ctx context.Context, id int64, dto domain.SaveNotificationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)

	Preview(ctx context.Context, dto domain.NotificationPreviewDTO) domain.NotificationPreview
	Placeholders() []notification.Placeholder
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, dto domain.UpdateSettingsDTO) (*domain.Settings, error)
}

type LocationService interface {
	Create(ctx context.Context, dto domain.SaveLocationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Update(ctx context.Context, id int64, dto domain.SaveLocationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Location, error)
	SaveBusinessHours(ctx context.Context, id int64, raw any) (domain.WeeklySchedule, error)
}

type HolidayService interface {
	Create(ctx context.Context, dto domain.SaveHolidayDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Holiday, error)
	Update(ctx context.Context, id int64, dto domain.SaveHolidayDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.HolidayFilter) ([]domain.Holiday, error)
}

// failure keeps domain errors for the handler and hides everything else behind message.
func failure(err error, message string) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}
	return errors.New(message)
}
