package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

// @Summary Настройки
// @Tags Настройки
// @Produce json
// @Success 200 {object} domain.Settings "Текущие настройки"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.services.Settings.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка при получении настроек", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, settings)
}

// @Summary Обновить настройки
// @Tags Настройки
// @Accept json
// @Produce json
// @Param input body domain.UpdateSettingsDTO true "Изменяемые поля"
// @Success 200 {object} domain.Settings "Сохраненные настройки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /settings [put]
func (h *Handler) updateSettings(c *gin.Context) {
	var req domain.UpdateSettingsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	settings, err := h.services.Settings.Update(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при сохранении настроек", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, settings, "настройки сохранены")
}

// @Summary Список филиалов
// @Tags Настройки
// @Produce json
// @Success 200 {array} domain.Location "Филиалы"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /locations [get]
func (h *Handler) getLocations(c *gin.Context) {
	locations, err := h.services.Location.List(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка при получении филиалов", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, locations)
}

// @Summary Получить филиал
// @Tags Настройки
// @Produce json
// @Param id path int true "ID филиала"
// @Success 200 {object} domain.Location "Филиал"
// @Failure 404 {object} errorResponseBody "Филиал не найден"
// @Security ApiKeyAuth
// @Router /locations/{id} [get]
func (h *Handler) getLocationByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	location, err := h.services.Location.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении филиала", zap.Int64("locationId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, location)
}

// @Summary Создать филиал
// @Tags Настройки
// @Accept json
// @Produce json
// @Param input body domain.SaveLocationDTO true "Данные филиала"
// @Success 201 {object} map[string]interface{} "ID созданного филиала"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /locations [post]
func (h *Handler) createLocation(c *gin.Context) {
	var req domain.SaveLocationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Location.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании филиала", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "филиал создан")
}

// @Summary Обновить филиал
// @Tags Настройки
// @Accept json
// @Produce json
// @Param id path int true "ID филиала"
// @Param input body domain.SaveLocationDTO true "Данные филиала"
// @Success 200 {object} successResponseBody "Филиал обновлен"
// @Failure 404 {object} errorResponseBody "Филиал не найден"
// @Security ApiKeyAuth
// @Router /locations/{id} [put]
func (h *Handler) updateLocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.SaveLocationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Location.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении филиала", zap.Int64("locationId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "филиал обновлен")
}

// @Summary Часы работы филиала
// @Description Принимает недельное расписание в свободной форме и сохраняет нормализованную неделю
// @Tags Настройки
// @Accept json
// @Produce json
// @Param id path int true "ID филиала"
// @Param input body object true "Расписание по дням"
// @Success 200 {object} domain.WeeklySchedule "Сохраненные часы работы"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Филиал не найден"
// @Security ApiKeyAuth
// @Router /locations/{id}/business-hours [put]
func (h *Handler) saveBusinessHours(c *gin.Context) {
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

	week, err := h.services.Location.SaveBusinessHours(c.Request.Context(), id, raw)
	if err != nil {
		h.logger.Error("ошибка при сохранении часов работы", zap.Int64("locationId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, week, "часы работы сохранены")
}

// @Summary Удалить филиал
// @Tags Настройки
// @Param id path int true "ID филиала"
// @Success 204 {object} nil "Филиал удален"
// @Failure 404 {object} errorResponseBody "Филиал не найден"
// @Security ApiKeyAuth
// @Router /locations/{id} [delete]
func (h *Handler) deleteLocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Location.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении филиала", zap.Int64("locationId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "филиал удален")
}

// @Summary Список выходных дней
// @Tags Настройки
// @Produce json
// @Param location_id query int false "ID филиала"
// @Param from query string false "С даты"
// @Param to query string false "По дату"
// @Success 200 {array} domain.Holiday "Выходные дни"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /holidays [get]
func (h *Handler) getHolidays(c *gin.Context) {
	ctx := c.Request.Context()
	f := filter.BuildHolidayFilter(c.Request.URL.Query(), h.settings(ctx).Location())

	holidays, err := h.services.Holiday.List(ctx, f)
	if err != nil {
		h.logger.Error("ошибка при получении выходных дней", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, holidays)
}

// @Summary Получить выходной день
// @Tags Настройки
// @Produce json
// @Param id path int true "ID выходного дня"
// @Success 200 {object} domain.Holiday "Выходной день"
// @Failure 404 {object} errorResponseBody "Выходной день не найден"
// @Security ApiKeyAuth
// @Router /holidays/{id} [get]
func (h *Handler) getHolidayByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	holiday, err := h.services.Holiday.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении выходного дня", zap.Int64("holidayId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, holiday)
}

// @Summary Создать выходной день
// @Tags Настройки
// @Accept json
// @Produce json
// @Param input body domain.SaveHolidayDTO true "Выходной день"
// @Success 201 {object} map[string]interface{} "ID созданного выходного дня"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /holidays [post]
func (h *Handler) createHoliday(c *gin.Context) {
	var req domain.SaveHolidayDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Holiday.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании выходного дня", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "выходной день добавлен")
}

// @Summary Обновить выходной день
// @Tags Настройки
// @Accept json
// @Produce json
// @Param id path int true "ID выходного дня"
// @Param input body domain.SaveHolidayDTO true "Выходной день"
// @Success 200 {object} successResponseBody "Выходной день обновлен"
// @Failure 404 {object} errorResponseBody "Выходной день не найден"
// @Security ApiKeyAuth
// @Router /holidays/{id} [put]
func (h *Handler) updateHoliday(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.SaveHolidayDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Holiday.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении выходного дня", zap.Int64("holidayId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "выходной день обновлен")
}

// @Summary Удалить выходной день
// @Tags Настройки
// @Param id path int true "ID выходного дня"
// @Success 204 {object} nil "Выходной день удален"
// @Failure 404 {object} errorResponseBody "Выходной день не найден"
// @Security ApiKeyAuth
// @Router /holidays/{id} [delete]
func (h *Handler) deleteHoliday(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Holiday.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении выходного дня", zap.Int64("holidayId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "выходной день удален")
}
