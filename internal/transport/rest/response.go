package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookadmin/internal/domain"
)

type errorResponseBody struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Code    int              `json:"code,omitempty"`
	Reason  domain.ErrorCode `json:"reason,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func paginatedSuccessResponse[T any](c *gin.Context, page *domain.Page[T]) {
	c.JSON(http.StatusOK, paginatedResponse{
		Data:       page.Items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// statusFor maps a service error to the HTTP status and the message safe to show the admin.
func statusFor(err error) (int, string, domain.ErrorCode) {
	domainErr, ok := domain.AsError(err)
	if !ok {
		if err != nil {
			return http.StatusInternalServerError, err.Error(), ""
		}
		return http.StatusInternalServerError, "внутренняя ошибка сервера", ""
	}

	switch domainErr.Code {
	case domain.ErrorCodeNotFound:
		return http.StatusNotFound, domainErr.Message, domainErr.Code
	case domain.ErrorCodeValidation:
		return http.StatusBadRequest, domainErr.Message, domainErr.Code
	case domain.ErrorCodeConflict:
		return http.StatusConflict, domainErr.Message, domainErr.Code
	default:
		return http.StatusInternalServerError, domainErr.Message, domainErr.Code
	}
}

func serviceErrorResponse(c *gin.Context, err error) {
	status, message, reason := statusFor(err)
	c.AbortWithStatusJSON(status, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    status,
		Reason:  reason,
	})
}
