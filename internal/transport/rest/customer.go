package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bookadmin/internal/domain"
	"bookadmin/internal/filter"
)

// @Summary Список клиентов
// @Description Возвращает страницу клиентов с поиском и сортировкой
// @Tags Клиенты
// @Produce json
// @Param search query string false "Поиск по имени, email или телефону"
// @Param orderby query string false "Поле сортировки"
// @Param order query string false "Направление (asc, desc)"
// @Param paged query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} paginatedResponse "Клиенты"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /customers [get]
func (h *Handler) getCustomers(c *gin.Context) {
	ctx := c.Request.Context()
	f := filter.BuildCustomerFilter(c.Request.URL.Query(), h.settings(ctx).DefaultPageSize)

	page, err := h.services.Customer.List(ctx, f)
	if err != nil {
		h.logger.Error("ошибка при получении списка клиентов", zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, page)
}

// @Summary Получить клиента
// @Tags Клиенты
// @Produce json
// @Param id path int true "ID клиента"
// @Success 200 {object} domain.Customer "Клиент"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Клиент не найден"
// @Security ApiKeyAuth
// @Router /customers/{id} [get]
func (h *Handler) getCustomerByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := h.services.Customer.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("ошибка при получении клиента", zap.Int64("customerId", id), zap.Error(err))
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, customer)
}

// @Summary Создать клиента
// @Tags Клиенты
// @Accept json
// @Produce json
// @Param input body domain.CreateCustomerDTO true "Данные клиента"
// @Success 201 {object} map[string]interface{} "ID созданного клиента"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Клиент уже существует"
// @Security ApiKeyAuth
// @Router /customers [post]
func (h *Handler) createCustomer(c *gin.Context) {
	var req domain.CreateCustomerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Customer.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("ошибка при создании клиента", zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusCreated, map[string]interface{}{"id": id}, "клиент создан")
}

// @Summary Обновить клиента
// @Tags Клиенты
// @Accept json
// @Produce json
// @Param id path int true "ID клиента"
// @Param input body domain.UpdateCustomerDTO true "Изменяемые поля"
// @Success 200 {object} successResponseBody "Клиент обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Клиент не найден"
// @Security ApiKeyAuth
// @Router /customers/{id} [put]
func (h *Handler) updateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateCustomerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Customer.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("ошибка при обновлении клиента", zap.Int64("customerId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusOK, nil, "клиент обновлен")
}

// @Summary Удалить клиента
// @Tags Клиенты
// @Param id path int true "ID клиента"
// @Success 204 {object} nil "Клиент удален"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Клиент не найден"
// @Security ApiKeyAuth
// @Router /customers/{id} [delete]
func (h *Handler) deleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.services.Customer.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("ошибка при удалении клиента", zap.Int64("customerId", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	h.succeed(c, http.StatusNoContent, nil, "клиент удален")
}
