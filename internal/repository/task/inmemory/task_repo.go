package inmemory

import (
	"context"
	"sync"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage держит коллекцию в памяти процесса, порядок - порядок вставки
type TaskStorage struct {
	tasks []*task.Task
	mtx   *sync.RWMutex
}

func NewTaskStorage(initial ...*task.Task) *TaskStorage {
	s := &TaskStorage{
		tasks: make([]*task.Task, 0, len(initial)),
		mtx:   &sync.RWMutex{},
	}
	for _, t := range initial {
		s.tasks = append(s.tasks, t.Clone())
	}
	return s
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Хранилище в памяти доступно")
	return nil
}

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, len(s.tasks))
	for i, t := range s.tasks {
		res[i] = t.Clone()
	}
	return res, nil
}

func (s *TaskStorage) Append(ctx context.Context, taskToAdd *task.Task) (*task.Task, error) {
	if err := taskToAdd.Validate(); err != nil {
		return nil, repo.NewStorageError("добавление", "", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks = append(s.tasks, taskToAdd.Clone())
	return taskToAdd, nil
}

func (s *TaskStorage) Replace(ctx context.Context, taskToReplace *task.Task) (*task.Task, bool, error) {
	if err := taskToReplace.Validate(); err != nil {
		return nil, false, repo.NewStorageError("обновление", "", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, t := range s.tasks {
		if t.ID == taskToReplace.ID {
			s.tasks[i] = taskToReplace.Clone()
			return taskToReplace, true, nil
		}
	}
	return nil, false, nil
}

func (s *TaskStorage) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for ind, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:ind], s.tasks[ind+1:]...)
			return true, nil
		}
	}
	return false, nil
}
