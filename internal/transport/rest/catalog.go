package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

// @Summary Список категорий
// @Tags Каталог
// @Produce json
// @Success 200 {array} domain.Category "Категории по позиции"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /categories [get]
func (h *Handler) getCategories(c *gin.Context) {
	categories, err := h.services.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("ошибка при получении категорий", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, categories)
}

// @Summary Получить категорию
// @Tags Каталог
// @Produce json
// @Param id path int true "ID категории"
// @Success 200 {object} domain.Category "Категория"
// @Failure 404 {object} errorResponseBody "Категория не найдена"
// @Security ApiKeyAuth
// @Router /categories/{id} [get]
func (h *Handler) getCategoryByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.services.Catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении категории", zap.Int64("categoryId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, category)
}

// @Summary Создать категорию
// @Tags Каталог
// @Accept json
// @Produce json
// @Param input body domain.CreateCategoryDTO true "Данные категории"
// @Success 201 {object} map[string]interface{} "ID созданной категории"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /categories [post]
func (h *Handler) createCategory(c *gin.Context) {
	var req domain.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании категории", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "категория создана")
}

// @Summary Обновить категорию
// @Tags Каталог
// @Accept json
// @Produce json
// @Param id path int true "ID категории"
// @Param input body domain.UpdateCategoryDTO true "Изменяемые поля"
// @Success 200 {object} successResponseBody "Категория обновлена"
// @Failure 404 {object} errorResponseBody "Категория не найдена"
// @Security ApiKeyAuth
// @Router /categories/{id} [put]
func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.UpdateCategory(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении категории", zap.Int64("categoryId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "категория обновлена")
}

// @Summary Удалить категорию
// @Tags Каталог
// @Param id path int true "ID категории"
// @Success 204 {object} nil "Категория удалена"
// @Failure 404 {object} errorResponseBody "Категория не найдена"
// @Security ApiKeyAuth
// @Router /categories/{id} [delete]
func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении категории", zap.Int64("categoryId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "категория удалена")
}

// @Summary Список услуг
// @Tags Каталог
// @Produce json
// @Param search query string false "Поиск по названию"
// @Param category_id query int false "ID категории"
// @Param employee_id query int false "ID сотрудника"
// @Param status query string false "Статус (visible, hidden)"
// @Success 200 {array} domain.Service "Услуги"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /services [get]
func (h *Handler) getServices(c *gin.Context) {
	services, err := h.services.Catalog.ListServices(c.Request.Context(), filter.BuildServiceFilter(c.Request.URL.Query()))
	if err != nil {
		h.logger.Error("ошибка при получении услуг", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Услуги по категориям
// @Description Группирует услуги по категориям в порядке позиций; услуги без категории идут последней группой
// @Tags Каталог
// @Produce json
// @Param employee_id query int false "ID сотрудника"
// @Param status query string false "Статус (visible, hidden)"
// @Success 200 {array} domain.ServiceGroup "Группы услуг"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /services/grouped [get]
func (h *Handler) getGroupedServices(c *gin.Context) {
	groups, err := h.services.Catalog.Grouped(c.Request.Context(), filter.BuildServiceFilter(c.Request.URL.Query()))
	if err != nil {
		h.logger.Error("ошибка при группировке услуг", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, groups)
}

// @Summary Получить услугу
// @Tags Каталог
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} domain.Service "Услуга"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Security ApiKeyAuth
// @Router /services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc, err := h.services.Catalog.GetService(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении услуги", zap.Int64("serviceId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Создать услугу
// @Tags Каталог
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Данные услуги"
// @Success 201 {object} map[string]interface{} "ID созданной услуги"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) createService(c *gin.Context) {
	var req domain.CreateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Catalog.CreateService(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании услуги", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "услуга создана")
}

// @Summary Обновить услугу
// @Tags Каталог
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateServiceDTO true "Изменяемые поля"
// @Success 200 {object} successResponseBody "Услуга обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Catalog.UpdateService(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении услуги", zap.Int64("serviceId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "услуга обновлена")
}

// @Summary Удалить услугу
// @Tags Каталог
// @Param id path int true "ID услуги"
// @Success 204 {object} nil "Услуга удалена"
// @Failure 404 {object} errorResponseBody "Услуга не найдена"
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Catalog.DeleteService(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении услуги", zap.Int64("serviceId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "услуга удалена")
}
