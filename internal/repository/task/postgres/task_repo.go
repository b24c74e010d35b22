package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"
	repo "kanban/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Options struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
}

// Storage - хранилище в PostgreSQL. В отличие от файла каждая операция
// атомарна на уровне одной строки.
type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string, opts Options) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		config.MinConns = opts.MinConns
	}
	if opts.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return repo.NewStorageError("ping", "", err)
	}
	return nil
}

const selectColumns = `id, title, description, status, priority, due_date, created_at, updated_at`

func (s *Storage) List(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM tasks ORDER BY position`)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, repo.NewStorageError("получение задач", "", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, repo.NewStorageError("сканирование", "", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, repo.NewStorageError("итерация по строкам", "", err)
	}

	slowQuery(start, time.Millisecond*50+time.Millisecond*time.Duration(len(tasks)))
	return tasks, nil
}

func (s *Storage) Append(ctx context.Context, taskToAdd *task.Task) (*task.Task, error) {
	start := time.Now()
	if err := taskToAdd.Validate(); err != nil {
		return nil, repo.NewStorageError("добавление", "", err)
	}

	query := `INSERT INTO tasks
				(id, title, description, status, priority, due_date, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.pool.Exec(ctx, query,
		taskToAdd.ID,
		taskToAdd.Title,
		taskToAdd.Description,
		taskToAdd.Status,
		taskToAdd.Priority,
		dueDateArg(taskToAdd.DueDate),
		taskToAdd.CreatedAt,
		taskToAdd.UpdatedAt,
	)
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, repo.NewStorageError("добавление задачи", "", err)
	}

	slowQuery(start, time.Millisecond*50)
	return taskToAdd, nil
}

func (s *Storage) Replace(ctx context.Context, taskToReplace *task.Task) (*task.Task, bool, error) {
	start := time.Now()
	if err := taskToReplace.Validate(); err != nil {
		return nil, false, repo.NewStorageError("обновление", "", err)
	}

	query := `UPDATE tasks
			SET title = $2,
				description = $3,
				status = $4,
				priority = $5,
				due_date = $6,
				updated_at = $7
			WHERE id = $1
			RETURNING id`

	var id uuid.UUID
	err := s.pool.QueryRow(ctx, query,
		taskToReplace.ID,
		taskToReplace.Title,
		taskToReplace.Description,
		taskToReplace.Status,
		taskToReplace.Priority,
		dueDateArg(taskToReplace.DueDate),
		taskToReplace.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("Repository: Задача для обновления не найдена", zap.String("task_id", taskToReplace.ID.String()))
			return nil, false, nil
		}
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, false, repo.NewStorageError("обновление задачи", "", err)
	}

	slowQuery(start, time.Millisecond*100)
	return taskToReplace, true, nil
}

func (s *Storage) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return false, repo.NewStorageError("удаление задачи", "", err)
	}

	slowQuery(start, time.Millisecond*100)
	return tag.RowsAffected() > 0, nil
}

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	var due *time.Time

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&due,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if due != nil {
		d := task.NewDate(*due)
		t.DueDate = &d
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func dueDateArg(d *task.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func slowQuery(start time.Time, limit time.Duration) {
	if time.Since(start) > limit {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
}
