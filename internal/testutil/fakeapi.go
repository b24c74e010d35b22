// Package testutil - вспомогательные типы для тестов CLI.
package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"kanban/internal/client"
	"kanban/internal/handlers/dto"
	"kanban/internal/models/task"
	"kanban/internal/repository/task/inmemory"
	"kanban/internal/service"

	"github.com/google/uuid"
)

// FakeAPI - store.API без сети: настоящий TaskService поверх памяти,
// бизнес-ошибки превращаются в *client.APIError, как их вернул бы сервер
type FakeAPI struct {
	mu    sync.Mutex
	repo  *inmemory.TaskStorage
	svc   *service.TaskService
	calls map[string]int

	// Подмена ошибок
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewFakeAPI(initial ...*task.Task) *FakeAPI {
	repo := inmemory.NewTaskStorage(initial...)
	return &FakeAPI{
		repo:  repo,
		svc:   service.NewTaskService(repo),
		calls: make(map[string]int),
	}
}

// AddTask кладёт задачу с заданным id напрямую в хранилище
func (f *FakeAPI) AddTask(id, title string, status task.Status) *task.Task {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t := &task.Task{
		ID:        uuid.MustParse(id),
		Title:     title,
		Status:    status,
		Priority:  task.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	added, _ := f.repo.Append(context.Background(), t)
	return added
}

// Calls - сколько раз вызывался метод (List, Create, Update, Delete)
func (f *FakeAPI) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Tasks - содержимое "сервера"
func (f *FakeAPI) Tasks() []*task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks, _ := f.svc.ListTasks(context.Background())
	return tasks
}

func (f *FakeAPI) List(ctx context.Context) ([]*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["List"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	tasks, err := f.svc.ListTasks(ctx)
	return tasks, toAPIError(err)
}

func (f *FakeAPI) Create(ctx context.Context, req dto.CreateTaskRequest) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Create"]++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	created, err := f.svc.CreateTask(ctx, req.Input())
	if err != nil {
		return nil, toAPIError(err)
	}
	return created, nil
}

func (f *FakeAPI) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTaskRequest) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Update"]++
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	updated, err := f.svc.UpdateTask(ctx, id, req.Input())
	if err != nil {
		return nil, toAPIError(err)
	}
	return updated, nil
}

func (f *FakeAPI) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Delete"]++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	return toAPIError(f.svc.DeleteTask(ctx, id))
}

func toAPIError(err error) error {
	if err == nil {
		return nil
	}
	businessErr, ok := service.AsBusinessError(err)
	if !ok {
		return &client.APIError{StatusCode: http.StatusInternalServerError, Code: "STORAGE_ERROR", Message: err.Error()}
	}

	status := http.StatusBadRequest
	if businessErr.Code == service.CodeNotFound {
		status = http.StatusNotFound
	}
	return &client.APIError{StatusCode: status, Code: businessErr.Code, Message: businessErr.Message}
}
