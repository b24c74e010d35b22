package handlers

import (
	"encoding/json"
	"net/http"

	"kanban/internal/handlers/dto"
	"kanban/internal/logger"
)

func responseWithJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("HTTP: Ошибка записи ответа", err)
	}
}

func responseWithError(w http.ResponseWriter, code int, errCode, message string, details map[string]any) {
	responseWithJSON(w, code, dto.ErrorResponse{
		Error:   message,
		Code:    errCode,
		Details: details,
	})
}

func responseNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
