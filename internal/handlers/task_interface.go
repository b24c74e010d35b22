package handlers

import (
	"context"

	"kanban/internal/models/task"
	"kanban/internal/service"

	"github.com/google/uuid"
)

type Service interface {
	HealthCheck(context.Context) error
	ListTasks(context.Context) ([]*task.Task, error)
	CreateTask(context.Context, service.CreateTaskInput) (*task.Task, error)
	UpdateTask(context.Context, uuid.UUID, service.UpdateTaskInput) (*task.Task, error)
	DeleteTask(context.Context, uuid.UUID) error
}
