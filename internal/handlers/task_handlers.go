package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"kanban/internal/handlers/dto"
	"kanban/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	serviceName  = "kanban"
	maxBodyBytes = 1 << 20
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	tasks, err := s.TaskService.ListTasks(r.Context())
	if err != nil {
		handleError(w, r, err, "list_tasks")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, tasks)
}

func (s *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !requireJSON(w, r) {
		return
	}

	var request dto.CreateTaskRequest
	if !decodeBody(w, r, &request, false) {
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задачи")
	created, err := s.TaskService.CreateTask(r.Context(), request.Input())
	if err != nil {
		handleError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, created)
}

func (s *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if !requireJSON(w, r) {
		return
	}

	var request dto.UpdateTaskRequest
	// пустое тело - это пустое обновление, его отклонит сервис
	if !decodeBody(w, r, &request, true) {
		return
	}

	logger.Info("HTTP: Запрос к сервису обновления задачи")
	updated, err := s.TaskService.UpdateTask(r.Context(), id, request.Input())
	if err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, updated)
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления задачи")
	if err := s.TaskService.DeleteTask(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_task")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	responseNoContent(w)
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "unavailable",
			Service: serviceName,
			Error:   "хранилище недоступно",
		})
		return
	}

	responseWithJSON(w, http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}

// MethodNotAllowed отвечает 405 и перечисляет в Allow методы,
// которые routes принимает для этого пути
func MethodNotAllowed(routes chi.Routes) http.HandlerFunc {
	candidates := []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		allowed := make([]string, 0, len(candidates))
		for _, method := range candidates {
			if routes.Match(chi.NewRouteContext(), method, r.URL.Path) {
				allowed = append(allowed, method)
			}
		}

		logger.Warn("HTTP: Неверный метод",
			zap.String("path", r.URL.Path),
			zap.String("received", r.Method),
			zap.Strings("allowed", allowed),
			zap.String("client_ip", r.RemoteAddr))

		w.Header().Set("Allow", strings.Join(allowed, ", "))
		responseWithError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed,
			"метод "+r.Method+" не поддерживается", map[string]any{"allowed": allowed})
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("id", idParam),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, CodeInvalidID,
			"неверный id задачи: "+idParam, map[string]any{"id": idParam})
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, CodeInvalidID, "id не может быть пустым", nil)
		return uuid.Nil, false
	}

	return id, true
}

func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if checkContentType(r, "application/json") {
		return true
	}

	logger.Warn("HTTP: Неверный тип контента",
		zap.String("expected", "application/json"),
		zap.String("received", r.Header.Get("Content-Type")),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusUnsupportedMediaType, CodeUnsupportedMediaType,
		"Content-Type должен быть application/json", nil)
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any, allowEmpty bool) bool {
	defer r.Body.Close()

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(target)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	logger.Warn("HTTP: Ошибка чтения JSON",
		zap.Error(err),
		zap.String("client_ip", r.RemoteAddr))

	message := "неверное тело запроса: " + err.Error()
	if errors.Is(err, io.EOF) {
		message = "пустое тело запроса"
	}
	responseWithError(w, http.StatusBadRequest, CodeInvalidJSON, message, nil)
	return false
}
