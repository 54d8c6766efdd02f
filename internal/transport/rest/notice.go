package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/flash"
)

const redirectParam = "redirect_to"

// @Summary Получение уведомления
// @Description Возвращает и удаляет последнее уведомление о результате действия пользователя
// @Tags Уведомления
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} flash.Notice "Уведомление"
// @Success 204 {object} nil "Уведомлений нет"
// @Failure 401 {object} errorResponseBody "Пользователь не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /notices [get]
func (h *Handler) getNotice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	notice, err := h.notices.Take(c.Request.Context(), strconv.FormatInt(userID, 10))
	if err != nil {
		h.logger.Error("ошибка получения уведомления", zap.Int64("userId", userID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if notice == nil {
		noContentResponse(c)
		return
	}

	successResponse(c, http.StatusOK, notice)
}

// succeed records a success notice for the current user and answers either with a redirect or JSON.
func (h *Handler) succeed(c *gin.Context, statusCode int, data interface{}, message string) {
	h.putNotice(c, flash.Notice{Type: flash.NoticeSuccess, Message: message})

	if target, ok := redirectTarget(c); ok {
		c.Redirect(http.StatusSeeOther, target)
		return
	}

	if statusCode == http.StatusNoContent {
		noContentResponse(c)
		return
	}

	c.JSON(statusCode, successResponseBody{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.putNotice(c, flash.Failure(err))

	if target, ok := redirectTarget(c); ok {
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return
	}

	serviceErrorResponse(c, err)
}

func (h *Handler) putNotice(c *gin.Context, notice flash.Notice) {
	userID, err := getUserID(c)
	if err != nil {
		return
	}

	if err := h.notices.Put(c.Request.Context(), strconv.FormatInt(userID, 10), notice); err != nil {
		h.logger.Warn("ошибка сохранения уведомления", zap.Int64("userId", userID), zap.Error(err))
	}
}

func redirectTarget(c *gin.Context) (string, bool) {
	target := c.Query(redirectParam)
	if target == "" && strings.HasPrefix(c.ContentType(), "application/x-www-form-urlencoded") {
		target = c.PostForm(redirectParam)
	}
	return safeRedirect(target)
}

// safeRedirect accepts only paths on this host, so a notice never bounces the admin elsewhere.
func safeRedirect(target string) (string, bool) {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "", false
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}

	return u.String(), true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "некорректный идентификатор")
		return 0, false
	}
	return id, true
}

// settings falls back to defaults so list pages keep working while the settings row is unreadable.
func (h *Handler) settings(ctx context.Context) domain.Settings {
	settings, err := h.services.Settings.Get(ctx)
	if err != nil || settings == nil {
		h.logger.Warn("используются настройки по умолчанию", zap.Error(err))
		return domain.DefaultSettings()
	}
	return *settings
}
