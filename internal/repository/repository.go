package repository

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookadmin/internal/domain"
)

// psql builds list queries whose shape depends on the filter.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Repositories struct {
	User         UserRepository
	Auth         AuthRepository
	Employee     EmployeeRepository
	Customer     CustomerRepository
	Category     CategoryRepository
	Service      ServiceRepository
	Appointment  AppointmentRepository
	Location     LocationRepository
	Holiday      HolidayRepository
	Notification NotificationRepository
	Settings     SettingsRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Auth:         NewAuthRepository(db),
		Employee:     NewEmployeeRepository(db),
		Customer:     NewCustomerRepository(db),
		Category:     NewCategoryRepository(db),
		Service:      NewServiceRepository(db),
		Appointment:  NewAppointmentRepository(db),
		Location:     NewLocationRepository(db),
		Holiday:      NewHolidayRepository(db),
		Notification: NewNotificationRepository(db),
		Settings:     NewSettingsRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee domain.CreateEmployeeDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Update(ctx context.Context, id int64, employee domain.UpdateEmployeeDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, int, error)

	UpdateSchedule(ctx context.Context, id int64, schedule domain.WeeklySchedule) error
	SetServices(ctx context.Context, id int64, serviceIDs []int64) error
	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, customer domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, int, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category domain.CreateCategoryDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, id int64, category domain.UpdateCategoryDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Category, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, service domain.CreateServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, service domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appointment domain.Appointment) error
	UpdateStatus(ctx context.Context, ids []int64, status domain.AppointmentStatus) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	ListRange(ctx context.Context, query domain.CalendarQuery) ([]domain.Appointment, error)
}

type LocationRepository interface {
	Create(ctx context.Context, location domain.SaveLocationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Update(ctx context.Context, id int64, location domain.SaveLocationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Location, error)
	UpdateBusinessHours(ctx context.Context, id int64, hours domain.WeeklySchedule) error
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday domain.Holiday) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Holiday, error)
	Update(ctx context.Context, holiday domain.Holiday) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.HolidayFilter) ([]domain.Holiday, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.SaveNotificationDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	Update(ctx context.Context, id int64, notification domain.SaveNotificationDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.NotificationFilter) ([]domain.Notification, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

// likePattern escapes LIKE wildcards so user search text matches literally.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(search)) + "%"
}
