package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

// @Summary Список шаблонов уведомлений
// @Tags Уведомления
// @Produce json
// @Param event query string false "Событие"
// @Param channel query string false "Канал (email, sms)"
// @Param recipient query string false "Получатель (customer, employee, admin)"
// @Success 200 {array} domain.Notification "Шаблоны"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /notifications [get]
func (h *Handler) getNotifications(c *gin.Context) {
	notifications, err := h.services.Notification.List(c.Request.Context(), filter.BuildNotificationFilter(c.Request.URL.Query()))
	if err != nil {
		h.logger.Error("ошибка при получении шаблонов уведомлений", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, notifications)
}

// @Summary Каталог плейсхолдеров
// @Description Возвращает все плейсхолдеры, доступные в теме и тексте уведомлений
// @Tags Уведомления
// @Produce json
// @Success 200 {array} notification.Placeholder "Плейсхолдеры"
// @Security ApiKeyAuth
// @Router /notifications/placeholders [get]
func (h *Handler) getPlaceholders(c *gin.Context) {
	successResponse(c, http.StatusOK, h.services.Notification.Placeholders())
}

// @Summary Получить шаблон уведомления
// @Tags Уведомления
// @Produce json
// @Param id path int true "ID шаблона"
// @Success 200 {object} domain.Notification "Шаблон"
// @Failure 404 {object} errorResponseBody "Шаблон не найден"
// @Security ApiKeyAuth
// @Router /notifications/{id} [get]
func (h *Handler) getNotificationByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	n, err := h.services.Notification.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении шаблона уведомления", zap.Int64("notificationId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, n)
}

// @Summary Предпросмотр уведомления
// @Description Подставляет значения в плейсхолдеры и возвращает неизвестные токены
// @Tags Уведомления
// @Accept json
// @Produce json
// @Param input body domain.NotificationPreviewDTO true "Тема, текст и значения"
// @Success 200 {object} domain.NotificationPreview "Результат подстановки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /notifications/preview [post]
func (h *Handler) previewNotification(c *gin.Context) {
	var req domain.NotificationPreviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	successResponse(c, http.StatusOK, h.services.Notification.Preview(c.Request.Context(), req))
}

// @Summary Создать шаблон уведомления
// @Tags Уведомления
// @Accept json
// @Produce json
// @Param input body domain.SaveNotificationDTO true "Шаблон"
// @Success 201 {object} map[string]interface{} "ID созданного шаблона"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или неизвестные плейсхолдеры"
// @Security ApiKeyAuth
// @Router /notifications [post]
func (h *Handler) createNotification(c *gin.Context) {
	var req domain.SaveNotificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Notification.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании шаблона уведомления", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "шаблон уведомления создан")
}

// @Summary Обновить шаблон уведомления
// @Tags Уведомления
// @Accept json
// @Produce json
// @Param id path int true "ID шаблона"
// @Param input body domain.SaveNotificationDTO true "Шаблон"
// @Success 200 {object} successResponseBody "Шаблон обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или неизвестные плейсхолдеры"
// @Failure 404 {object} errorResponseBody "Шаблон не найден"
// @Security ApiKeyAuth
// @Router /notifications/{id} [put]
func (h *Handler) updateNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.SaveNotificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Notification.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении шаблона уведомления", zap.Int64("notificationId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "шаблон уведомления обновлен")
}

// @Summary Удалить шаблон уведомления
// @Tags Уведомления
// @Param id path int true "ID шаблона"
// @Success 204 {object} nil "Шаблон удален"
// @Failure 404 {object} errorResponseBody "Шаблон не найден"
// @Security ApiKeyAuth
// @Router /notifications/{id} [delete]
func (h *Handler) deleteNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Notification.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении шаблона уведомления", zap.Int64("notificationId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "шаблон уведомления удален")
}
