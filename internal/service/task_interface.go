package service

import (
	"context"

	"kanban/internal/models/task"

	"github.com/google/uuid"
)

// TaskRepository - хранилище коллекции задач.
// Каждая операция читает коллекцию целиком и записывает её целиком обратно.
type TaskRepository interface {
	HealthCheck(context.Context) error
	List(context.Context) ([]*task.Task, error)
	Append(context.Context, *task.Task) (*task.Task, error)
	// Replace возвращает false без ошибки, если задачи с таким id нет
	Replace(context.Context, *task.Task) (*task.Task, bool, error)
	Remove(context.Context, uuid.UUID) (bool, error)
}
