package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

type appointmentStatusRequest struct {
	Status domain.AppointmentStatus `json:"status" binding:"required,oneof=pending approved canceled rejected no_show completed"`
}

// @Summary Список записей
// @Description Возвращает страницу записей. Даты принимаются в часовом поясе из настроек, неизвестная сортировка заменяется сортировкой по дате начала
// @Tags Записи
// @Produce json
// @Param id query int false "ID записи"
// @Param date_from query string false "Начало не раньше дня"
// @Param date_to query string false "Начало не позже дня"
// @Param created_from query string false "Создана не раньше дня"
// @Param created_to query string false "Создана не позже дня"
// @Param search query string false "Поиск по клиенту"
// @Param customer_id query int false "ID клиента"
// @Param employee_id query int false "ID сотрудника"
// @Param service_id query int false "ID услуги"
// @Param location_id query int false "ID филиала"
// @Param status query string false "Статус записи"
// @Param orderby query string false "Поле сортировки"
// @Param order query string false "Направление (asc, desc)"
// @Param paged query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Записи"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	ctx := c.Request.Context()
	settings := h.settings(ctx)
	f := filter.BuildAppointmentFilter(c.Request.URL.Query(), settings.Location(), settings.DefaultPageSize)

	page, err := h.services.Appointment.List(ctx, f)
	if err != nil {
		h.logger.Error("ошибка при получении списка записей", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, page)
}

// @Summary Получить запись
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment "Запись"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении записи", zap.Int64("appointmentId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Создать запись
// @Description Без end_at окончание вычисляется по длительности услуги, без статуса берется статус по умолчанию из настроек
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Данные записи"
// @Success 201 {object} map[string]interface{} "ID созданной записи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Клиент, сотрудник или услуга не найдены"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	var req domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Appointment.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании записи", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "запись создана")
}

// @Summary Обновить запись
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateAppointmentDTO true "Изменяемые поля"
// @Success 200 {object} successResponseBody "Запись обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении записи", zap.Int64("appointmentId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "запись обновлена")
}

// @Summary Изменить статус записи
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body appointmentStatusRequest true "Новый статус"
// @Success 200 {object} successResponseBody "Статус изменен"
// @Failure 400 {object} errorResponseBody "Неизвестный статус"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id}/status [patch]
func (h *Handler) updateAppointmentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req appointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Appointment.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.logger.Error("ошибка при изменении статуса записи", zap.Int64("appointmentId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "статус записи изменен")
}

// @Summary Массовое изменение статуса
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.BulkStatusDTO true "ID записей и новый статус"
// @Success 200 {object} map[string]interface{} "Количество измененных записей"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /appointments/bulk-status [post]
func (h *Handler) bulkUpdateAppointmentStatus(c *gin.Context) {
	var req domain.BulkStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	updated, err := h.services.Appointment.BulkUpdateStatus(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при массовом изменении статуса", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, map[string]interface{}{"updated": updated}, "статус изменен у выбранных записей")
}

// @Summary Удалить запись
// @Tags Записи
// @Param id path int true "ID записи"
// @Success 204 {object} nil "Запись удалена"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) deleteAppointment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Appointment.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении записи", zap.Int64("appointmentId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "запись удалена")
}

// @Summary Календарь
// @Description Возвращает записи и выходные дни за период. По умолчанию неделя с сегодняшнего дня
// @Tags Записи
// @Produce json
// @Param start query string false "Первый день периода"
// @Param end query string false "Последний день периода включительно"
// @Param employee_id query int false "ID сотрудника"
// @Param location_id query int false "ID филиала"
// @Success 200 {array} domain.CalendarEvent "События"
// @Failure 400 {object} errorResponseBody "Слишком длинный период"
// @Security ApiKeyAuth
// @Router /calendar [get]
func (h *Handler) getCalendar(c *gin.Context) {
	ctx := c.Request.Context()
	query := filter.BuildCalendarQuery(c.Request.URL.Query(), h.settings(ctx).Location(), time.Now())

	events, err := h.services.Calendar.Events(ctx, query)
	if err != nil {
		h.logger.Error("ошибка при построении календаря", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, events)
}
