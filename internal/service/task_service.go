package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo     TaskRepository
	validate *validator.Validate
	now      func() time.Time
	newID    func() uuid.UUID
}

func NewTaskService(repo TaskRepository, opts ...Option) *TaskService {
	s := &TaskService{
		repo:     repo,
		validate: newValidator(),
		now:      systemClock,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp - текущее время в UTC с точностью до миллисекунд
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка хранилища: %w", err)
	}
	return nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*task.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(in); err != nil {
		return nil, translate(err)
	}

	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	now := s.timestamp()
	newTask := &task.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      task.Status(in.Status),
		Priority:    task.Priority(in.Priority),
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Append(ctx, newTask)
	if err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", created.ID.String()))
	return created, nil
}

// UpdateTask сливает переданные поля с текущей задачей.
// id и createdAt не меняются никогда, updatedAt не уменьшается.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (*task.Task, error) {
	if in.IsEmpty() {
		return nil, NewEmptyUpdate()
	}
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, translate(err)
	}

	opts, err := updateOptions(in)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	current := findTask(tasks, id)
	if current == nil {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
		return nil, NewNotFound(id.String())
	}

	updated := current.Clone()
	updated.Apply(opts...)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.timestamp()
	if updated.UpdatedAt.Before(current.UpdatedAt) {
		updated.UpdatedAt = current.UpdatedAt
	}

	saved, ok, err := s.repo.Replace(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	if !ok {
		// задачу удалили между чтением и записью
		logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
		return nil, NewNotFound(id.String())
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", id.String()))
	return saved, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if !removed {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
		return NewNotFound(id.String())
	}

	logger.Info("Service: Задача удалена", zap.String("task_id", id.String()))
	return nil
}

func updateOptions(in UpdateTaskInput) ([]task.TaskOption, error) {
	opts := make([]task.TaskOption, 0, 5)

	if in.Title != nil {
		opts = append(opts, task.WithTitle(*in.Title))
	}
	if in.Description != nil {
		opts = append(opts, task.WithDescription(*in.Description))
	}
	if in.Status != nil {
		opts = append(opts, task.WithStatus(task.Status(*in.Status)))
	}
	if in.Priority != nil {
		opts = append(opts, task.WithPriority(task.Priority(*in.Priority)))
	}
	if in.DueDate != nil {
		due, err := parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, task.WithDueDate(due))
	}

	return opts, nil
}

func findTask(tasks []*task.Task, id uuid.UUID) *task.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
