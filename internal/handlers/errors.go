package handlers

import (
	"net/http"

	"kanban/internal/logger"
	repo "kanban/internal/repository"
	"kanban/internal/service"

	"go.uber.org/zap"
)

const (
	CodeInvalidID            = "INVALID_ID"
	CodeInvalidJSON          = "INVALID_JSON"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeStorage              = "STORAGE_ERROR"
	CodeInternal             = "INTERNAL_ERROR"
)

// handleError отвечает клиенту по типу ошибки: бизнес-ошибки уходят
// как есть, детали ошибок хранилища остаются только в логе
func handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if businessErr, ok := service.AsBusinessError(err); ok {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("operation", operation),
			zap.String("error_code", businessErr.Code),
			zap.String("message", businessErr.Message),
			zap.Int("http_status", statusCode))

		responseWithError(w, statusCode, businessErr.Code, businessErr.Message, businessErr.Details)
		return
	}

	if repo.IsStorageError(err) {
		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("operation", operation),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError, CodeStorage, "ошибка хранилища задач", nil)
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusInternalServerError, CodeInternal, "внутренняя ошибка сервера", nil)
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation, service.CodeEmptyUpdate:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}
