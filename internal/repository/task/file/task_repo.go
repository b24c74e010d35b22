package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const DefaultPath = "data/tasks.json"

// TaskStorage хранит всю коллекцию задач одним JSON-документом.
//
// Чтение-изменение-запись сериализуется мьютексом внутри процесса.
// Между процессами блокировки нет: последний записавший выигрывает.
type TaskStorage struct {
	fs   afero.Fs
	path string
	mtx  sync.Mutex
}

func NewTaskStorage(fsys afero.Fs, path string) *TaskStorage {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultPath
	}
	return &TaskStorage{
		fs:   fsys,
		path: path,
	}
}

func (s *TaskStorage) Path() string {
	return s.path
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, err := s.read(); err != nil {
		logger.Error("Repository: Файл задач недоступен", err, zap.String("path", s.path))
		return err
	}
	return nil
}

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.read()
}

func (s *TaskStorage) Append(ctx context.Context, taskToAdd *task.Task) (*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := taskToAdd.Validate(); err != nil {
		return nil, repo.NewStorageError("добавление", s.path, err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.read()
	if err != nil {
		return nil, err
	}

	tasks = append(tasks, taskToAdd.Clone())
	if err := s.write(tasks); err != nil {
		return nil, err
	}
	return taskToAdd, nil
}

func (s *TaskStorage) Replace(ctx context.Context, taskToReplace *task.Task) (*task.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := taskToReplace.Validate(); err != nil {
		return nil, false, repo.NewStorageError("обновление", s.path, err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.read()
	if err != nil {
		return nil, false, err
	}

	idx := -1
	for i, t := range tasks {
		if t.ID == taskToReplace.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false, nil
	}

	tasks[idx] = taskToReplace.Clone()
	if err := s.write(tasks); err != nil {
		return nil, false, err
	}
	return taskToReplace, true, nil
}

func (s *TaskStorage) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	tasks, err := s.read()
	if err != nil {
		return false, err
	}

	filtered := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}

	// файл переписываем, только если что-то удалили
	if len(filtered) == len(tasks) {
		return false, nil
	}
	if err := s.write(filtered); err != nil {
		return false, err
	}
	return true, nil
}

// read читает коллекцию; отсутствующий файл создаётся с пустым массивом
func (s *TaskStorage) read() ([]*task.Task, error) {
	start := time.Now()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, repo.NewStorageError("чтение", s.path, err)
		}
		logger.Info("Repository: Файл задач не найден, создаём пустой", zap.String("path", s.path))
		if err := s.write([]*task.Task{}); err != nil {
			return nil, err
		}
		return []*task.Task{}, nil
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return []*task.Task{}, nil
	}

	var tasks []*task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, repo.NewStorageError("разбор", s.path, err)
	}
	for i, t := range tasks {
		if t == nil {
			return nil, repo.NewStorageError("разбор", s.path, fmt.Errorf("элемент %d равен null", i))
		}
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленное чтение файла", zap.Duration("ms", time.Since(start)), zap.Int("tasks", len(tasks)))
	}
	return tasks, nil
}

func (s *TaskStorage) write(tasks []*task.Task) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return repo.NewStorageError("создание каталога", dir, err)
		}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return repo.NewStorageError("сериализация", s.path, err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return repo.NewStorageError("запись", s.path, err)
	}
	return nil
}
