package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

const maxPhotoSize = 5 << 20

type employeeServicesRequest struct {
	ServiceIDs []int64 `json:"service_ids"`
}

// @Summary Список сотрудников
// @Description Возвращает страницу сотрудников с поиском и фильтром по статусу
// @Tags Сотрудники
// @Produce json
// @Param search query string false "Поиск по имени, email или телефону"
// @Param status query string false "Статус (active, inactive)"
// @Param paged query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Сотрудники"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /employees [get]
func (h *Handler) getEmployees(c *gin.Context) {
	ctx := c.Request.Context()
	f := filter.BuildEmployeeFilter(c.Request.URL.Query(), h.settings(ctx).DefaultPageSize)

	page, err := h.services.Employee.List(ctx, f)
	if err != nil {
		h.logger.Error("ошибка при получении списка сотрудников", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, page)
}

// @Summary Получить сотрудника
// @Tags Сотрудники
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 200 {object} domain.Employee "Сотрудник"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id} [get]
func (h *Handler) getEmployeeByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	employee, err := h.services.Employee.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении сотрудника", zap.Int64("employeeId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, employee)
}

// @Summary Форма сотрудника
// @Description Возвращает сотрудника, его недельное расписание и услуги, сгруппированные по категориям
// @Tags Сотрудники
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 200 {object} domain.EmployeeForm "Данные формы"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /employees/{id}/form [get]
func (h *Handler) getEmployeeForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	form, err := h.services.Employee.Form(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("ошибка при загрузке формы сотрудника", zap.Int64("employeeId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, form)
}

// @Summary Создать сотрудника
// @Tags Сотрудники
// @Accept json
// @Produce json
// @Param input body domain.CreateEmployeeDTO true "Данные сотрудника"
// @Success 201 {object} map[string]interface{} "ID созданного сотрудника"
// @Success 303 {object} nil "Переход на redirect_to"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Email уже занят"
// @Security ApiKeyAuth
// @Router /employees [post]
func (h *Handler) createEmployee(c *gin.Context) {
	var req domain.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Employee.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании сотрудника", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "сотрудник создан")
}

// @Summary Обновить сотрудника
// @Tags Сотрудники
// @Accept json
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param input body domain.UpdateEmployeeDTO true "Изменяемые поля"
// @Success 200 {object} successResponseBody "Сотрудник обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id} [put]
func (h *Handler) updateEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateEmployeeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Employee.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении сотрудника", zap.Int64("employeeId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "сотрудник обновлен")
}

// @Summary Сохранить расписание сотрудника
// @Description Принимает недельное расписание в свободной форме (ключи дня: номера 1-7, начиная с понедельника) и сохраняет нормализованную неделю
// @Tags Сотрудники
// @Accept json
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param input body object true "Расписание по дням"
// @Success 200 {object} domain.WeeklySchedule "Сохраненное расписание"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id}/schedule [put]
func (h *Handler) saveEmployeeSchedule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var raw any
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.logger.Warn("неверный формат расписания", zap.Error(err))
		badRequestResponse(c, "неверный формат расписания")
		return
	}

	week, err := h.services.Employee.SaveSchedule(c.Request.Context(), id, raw)
	if err != nil {
		h.logger.Error("ошибка при сохранении расписания", zap.Int64("employeeId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, week, "расписание сохранено")
}

// @Summary Назначить услуги сотруднику
// @Tags Сотрудники
// @Accept json
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param input body employeeServicesRequest true "ID услуг"
// @Success 200 {object} successResponseBody "Услуги назначены"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id}/services [put]
func (h *Handler) setEmployeeServices(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req employeeServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Employee.SetServices(c.Request.Context(), id, req.ServiceIDs); err != nil {
		h.logger.Error("ошибка при назначении услуг", zap.Int64("employeeId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "услуги сотрудника сохранены")
}

// @Summary Загрузить фото сотрудника
// @Tags Сотрудники
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID сотрудника"
// @Param photo formData file true "Изображение до 5 МБ"
// @Success 200 {object} map[string]interface{} "URL фото"
// @Failure 400 {object} errorResponseBody "Файл отсутствует или не является изображением"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id}/photo [post]
func (h *Handler) uploadEmployeePhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "файл фото обязателен")
		return
	}

	if file.Size > maxPhotoSize {
		badRequestResponse(c, "размер фото не должен превышать 5 МБ")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.logger.Error("ошибка открытия файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxPhotoSize+1))
	if err != nil {
		h.logger.Error("ошибка чтения файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	if len(data) > maxPhotoSize {
		badRequestResponse(c, "размер фото не должен превышать 5 МБ")
		return
	}

	url, err := h.services.Employee.UploadPhoto(c.Request.Context(), id, data, file.Filename)
	if err != nil {
		h.logger.Error("ошибка при загрузке фото", zap.Int64("employeeId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, map[string]interface{}{"photo_url": url}, "фото загружено")
}

// @Summary Удалить фото сотрудника
// @Tags Сотрудники
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 204 {object} nil "Фото удалено"
// @Failure 404 {object} errorResponseBody "Фото не найдено"
// @Security ApiKeyAuth
// @Router /employees/{id}/photo [delete]
func (h *Handler) deleteEmployeePhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Employee.DeletePhoto(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении фото", zap.Int64("employeeId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "фото удалено")
}

// @Summary Удалить сотрудника
// @Tags Сотрудники
// @Produce json
// @Param id path int true "ID сотрудника"
// @Success 204 {object} nil "Сотрудник удален"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Сотрудник не найден"
// @Security ApiKeyAuth
// @Router /employees/{id} [delete]
func (h *Handler) deleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Employee.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении сотрудника", zap.Int64("employeeId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "сотрудник удален")
}
