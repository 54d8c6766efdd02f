package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/config"
	"bookadmin/internal/flash"
	"bookadmin/internal/service"
)

type Handler struct {
	services *service.Services
	notices  flash.Store
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, notices flash.Store, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		notices:  notices,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		admin := api.Group("", h.authMiddleware())
		{
			admin.GET("/notices", h.getNotice)

			h.initUserRoutes(admin)
			h.initEmployeeRoutes(admin)
			h.initCustomerRoutes(admin)
			h.initCatalogRoutes(admin)
			h.initAppointmentRoutes(admin)
			h.initNotificationRoutes(admin)
			h.initSettingsRoutes(admin)
		}
	}
}

func (h *Handler) initUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("/me", h.getCurrentUser)

		admin := users.Group("", h.adminMiddleware())
		{
			admin.POST("", h.createUser)
			admin.GET("", h.getUsers)
		}
	}
}

func (h *Handler) initEmployeeRoutes(api *gin.RouterGroup) {
	employees := api.Group("/employees")
	{
		employees.GET("", h.getEmployees)
		employees.GET("/:id", h.getEmployeeByID)
		employees.GET("/:id/form", h.getEmployeeForm)

		manage := employees.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createEmployee)
			manage.PUT("/:id", h.updateEmployee)
			manage.PUT("/:id/schedule", h.saveEmployeeSchedule)
			manage.PUT("/:id/services", h.setEmployeeServices)
			manage.POST("/:id/photo", h.uploadEmployeePhoto)
			manage.DELETE("/:id/photo", h.deleteEmployeePhoto)
		}

		employees.DELETE("/:id", h.adminMiddleware(), h.deleteEmployee)
	}
}

func (h *Handler) initCustomerRoutes(api *gin.RouterGroup) {
	customers := api.Group("/customers")
	{
		customers.GET("", h.getCustomers)
		customers.GET("/:id", h.getCustomerByID)

		manage := customers.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createCustomer)
			manage.PUT("/:id", h.updateCustomer)
		}

		customers.DELETE("/:id", h.adminMiddleware(), h.deleteCustomer)
	}
}

func (h *Handler) initCatalogRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.getCategories)
		categories.GET("/:id", h.getCategoryByID)

		manage := categories.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createCategory)
			manage.PUT("/:id", h.updateCategory)
		}

		categories.DELETE("/:id", h.adminMiddleware(), h.deleteCategory)
	}

	services := api.Group("/services")
	{
		services.GET("", h.getServices)
		services.GET("/grouped", h.getGroupedServices)
		services.GET("/:id", h.getServiceByID)

		manage := services.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createService)
			manage.PUT("/:id", h.updateService)
		}

		services.DELETE("/:id", h.adminMiddleware(), h.deleteService)
	}
}

func (h *Handler) initAppointmentRoutes(api *gin.RouterGroup) {
	appointments := api.Group("/appointments")
	{
		appointments.GET("", h.getAppointments)
		appointments.GET("/:id", h.getAppointmentByID)

		manage := appointments.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createAppointment)
			manage.PUT("/:id", h.updateAppointment)
			manage.PATCH("/:id/status", h.updateAppointmentStatus)
			manage.POST("/bulk-status", h.bulkUpdateAppointmentStatus)
		}

		appointments.DELETE("/:id", h.adminMiddleware(), h.deleteAppointment)
	}

	api.GET("/calendar", h.getCalendar)
}

func (h *Handler) initNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications")
	{
		notifications.GET("", h.getNotifications)
		notifications.GET("/placeholders", h.getPlaceholders)
		notifications.GET("/:id", h.getNotificationByID)
		notifications.POST("/preview", h.previewNotification)

		manage := notifications.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createNotification)
			manage.PUT("/:id", h.updateNotification)
		}

		notifications.DELETE("/:id", h.adminMiddleware(), h.deleteNotification)
	}
}

func (h *Handler) initSettingsRoutes(api *gin.RouterGroup) {
	api.GET("/settings", h.getSettings)
	api.PUT("/settings", h.adminMiddleware(), h.updateSettings)

	locations := api.Group("/locations")
	{
		locations.GET("", h.getLocations)
		locations.GET("/:id", h.getLocationByID)

		manage := locations.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createLocation)
			manage.PUT("/:id", h.updateLocation)
			manage.PUT("/:id/business-hours", h.saveBusinessHours)
		}

		locations.DELETE("/:id", h.adminMiddleware(), h.deleteLocation)
	}

	holidays := api.Group("/holidays")
	{
		holidays.GET("", h.getHolidays)
		holidays.GET("/:id", h.getHolidayByID)

		manage := holidays.Group("", h.manageMiddleware())
		{
			manage.POST("", h.createHoliday)
			manage.PUT("/:id", h.updateHoliday)
		}

		holidays.DELETE("/:id", h.adminMiddleware(), h.deleteHoliday)
	}
}
