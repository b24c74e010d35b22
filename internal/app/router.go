package app

import (
	"net/http"

	"kanban/internal/config"
	"kanban/internal/handlers"
	"kanban/internal/metrics"
	"kanban/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *handlers.TaskHandler, m *metrics.Metrics, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))
	r.Use(middleware.RateLimit(cfg.RateLimit.RPM))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}

	r.Get("/tasks", h.ListTasks)          // GET /tasks
	r.Post("/tasks", h.CreateTask)        // POST /tasks
	r.Put("/tasks/{id}", h.UpdateTask)    // PUT /tasks/{id}
	r.Delete("/tasks/{id}", h.DeleteTask) // DELETE /tasks/{id}

	r.Get("/health", h.HealthCheck)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.MethodNotAllowed(handlers.MethodNotAllowed(r))

	return r
}
