package worker

import (
	"context"
	"fmt"
	"time"

	"kanban/internal/logger"
	"kanban/internal/models/task"

	"go.uber.org/zap"
)

type TaskLister interface {
	List(context.Context) ([]*task.Task, error)
}

// Publisher принимает снимок доски (metrics.Metrics)
type Publisher interface {
	SetTaskCounts(counts map[task.Status]int, overdue int)
}

// Summary - результат одной проверки
type Summary struct {
	Counts  map[task.Status]int
	Overdue int
}

// OverdueWorker периодически считает задачи по колонкам и просроченные.
// Задачи он только читает.
type OverdueWorker struct {
	repo      TaskLister
	publisher Publisher
	interval  time.Duration
	now       func() time.Time
}

func NewOverdueWorker(repo TaskLister, publisher Publisher, interval time.Duration) *OverdueWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &OverdueWorker{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		now:       time.Now,
	}
}

// Start блокируется до отмены ctx; первая проверка выполняется сразу
func (w *OverdueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runCheck(ctx)
	for {
		select {
		case <-ticker.C:
			w.runCheck(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *OverdueWorker) runCheck(ctx context.Context) {
	if _, err := w.Check(ctx); err != nil {
		logger.Warn("Worker: ошибка получения задач", zap.Error(err))
	}
}

func (w *OverdueWorker) Check(ctx context.Context) (Summary, error) {
	start := time.Now()

	tasks, err := w.repo.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("получение задач: %w", err)
	}

	now := w.now()
	summary := Summary{Counts: make(map[task.Status]int, len(task.Statuses))}
	for _, t := range tasks {
		summary.Counts[t.Status]++
		if t.IsOverdue(now) {
			summary.Overdue++
		}
	}

	if w.publisher != nil {
		w.publisher.SetTaskCounts(summary.Counts, summary.Overdue)
	}

	logger.Info(
		"Worker: Завершение проверки задач",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("overdue", summary.Overdue),
	)
	return summary, nil
}
