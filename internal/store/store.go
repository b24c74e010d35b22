package store

import (
	"context"
	"sync"

	"kanban/internal/handlers/dto"
	"kanban/internal/models/task"

	"github.com/google/uuid"
)

// API - удалённая сторона (client.Client)
type API interface {
	List(context.Context) ([]*task.Task, error)
	Create(context.Context, dto.CreateTaskRequest) (*task.Task, error)
	Update(context.Context, uuid.UUID, dto.UpdateTaskRequest) (*task.Task, error)
	Delete(context.Context, uuid.UUID) error
}

// Snapshot - состояние хранилища на момент изменения
type Snapshot struct {
	Tasks   []*task.Task
	Loading bool
	Err     error
}

// Store - локальная копия доски. Меняется только после ответа сервера,
// последняя ошибка хранится в одном слоте и сбрасывается следующим действием.
type Store struct {
	api API

	mu        sync.RWMutex
	tasks     []*task.Task
	loading   bool
	err       error
	listeners map[int]func(Snapshot)
	nextID    int
}

func New(api API) *Store {
	return &Store{
		api:       api,
		tasks:     []*task.Task{},
		loading:   true,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Init - первичная загрузка; ошибка остаётся только в Err
func (s *Store) Init(ctx context.Context) {
	_ = s.Refresh(ctx)
}

func (s *Store) Refresh(ctx context.Context) error {
	s.update(func() {
		s.loading = true
		s.err = nil
	})

	tasks, err := s.api.List(ctx)

	s.update(func() {
		s.loading = false
		if err != nil {
			s.err = err
			return
		}
		s.tasks = cloneAll(tasks)
	})
	return err
}

func (s *Store) Create(ctx context.Context, req dto.CreateTaskRequest) (*task.Task, error) {
	s.clearErr()

	created, err := s.api.Create(ctx, req)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.update(func() {
		s.tasks = append(s.tasks, created.Clone())
	})
	return created, nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, req dto.UpdateTaskRequest) (*task.Task, error) {
	s.clearErr()

	updated, err := s.api.Update(ctx, id, req)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.update(func() {
		for i, t := range s.tasks {
			if t.ID == id {
				s.tasks[i] = updated.Clone()
			}
		}
	})
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.clearErr()

	if err := s.api.Delete(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.update(func() {
		kept := s.tasks[:0]
		for _, t := range s.tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		s.tasks = kept
	})
	return nil
}

// MoveTask переносит задачу в другую колонку
func (s *Store) MoveTask(ctx context.Context, id uuid.UUID, status task.Status) (*task.Task, error) {
	value := string(status)
	return s.Update(ctx, id, dto.UpdateTaskRequest{Status: &value})
}

func (s *Store) Tasks() []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.tasks)
}

func (s *Store) ByStatus(status task.Status) []*task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*task.Task{}
	for _, t := range s.tasks {
		if t.Status == status {
			result = append(result, t.Clone())
		}
	}
	return result
}

// Grouped раскладывает задачи по колонкам, все три ключа присутствуют всегда
func (s *Store) Grouped() map[task.Status][]*task.Task {
	grouped := make(map[task.Status][]*task.Task, len(task.Statuses))
	for _, status := range task.Statuses {
		grouped[status] = s.ByStatus(status)
	}
	return grouped
}

// Find ищет задачу по полному id или однозначному префиксу
func (s *Store) Find(ref string) (*task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByRef(s.tasks, ref)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe вызывает fn после каждого изменения состояния
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) clearErr() {
	s.update(func() { s.err = nil })
}

func (s *Store) setErr(err error) {
	s.update(func() { s.err = err })
}

// update меняет состояние под локом и оповещает подписчиков уже без него
func (s *Store) update(change func()) {
	s.mu.Lock()
	change()
	snap := s.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks:   cloneAll(s.tasks),
		Loading: s.loading,
		Err:     s.err,
	}
}

func cloneAll(tasks []*task.Task) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, t.Clone())
	}
	return result
}
