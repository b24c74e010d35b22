package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kanban/internal/metrics"
	"kanban/internal/models/task"
	"kanban/internal/repository/task/inmemory"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLister struct{}

func (failingLister) List(context.Context) ([]*task.Task, error) {
	return nil, errors.New("disk unavailable")
}

func newTask(status task.Status, due *task.Date) *task.Task {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &task.Task{
		ID:        uuid.New(),
		Title:     "t",
		Status:    status,
		Priority:  task.PriorityLow,
		DueDate:   due,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func date(y int, m time.Month, d int) *task.Date {
	v := task.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &v
}

// TestOverdueWorker_Check тестирует подсчёт колонок и просроченных задач
func TestOverdueWorker_Check(t *testing.T) {
	tasks := []*task.Task{
		newTask(task.StatusTodo, date(2024, 3, 9)),  // просрочена
		newTask(task.StatusTodo, date(2024, 3, 10)), // срок сегодня
		newTask(task.StatusDoing, date(2024, 3, 1)), // просрочена
		newTask(task.StatusDone, date(2024, 3, 1)),  // закрыта
		newTask(task.StatusDoing, nil),
	}
	repo := inmemory.NewTaskStorage(tasks...)
	m := metrics.New()

	w := NewOverdueWorker(repo, m, time.Minute)
	w.now = func() time.Time { return time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC) }

	summary, err := w.Check(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Overdue)
	assert.Equal(t, 2, summary.Counts[task.StatusTodo])
	assert.Equal(t, 2, summary.Counts[task.StatusDoing])
	assert.Equal(t, 1, summary.Counts[task.StatusDone])

	expected := `
# HELP kanban_tasks_overdue Количество незавершённых задач с истёкшим сроком
# TYPE kanban_tasks_overdue gauge
kanban_tasks_overdue 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "kanban_tasks_overdue"))

	// задачи не изменились
	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, task.StatusTodo, stored[0].Status)
}

func TestOverdueWorker_CheckError(t *testing.T) {
	w := NewOverdueWorker(failingLister{}, nil, 0)

	_, err := w.Check(context.Background())
	assert.Error(t, err)
	assert.Equal(t, time.Minute, w.interval)
}

func TestOverdueWorker_StartStops(t *testing.T) {
	repo := inmemory.NewTaskStorage()
	w := NewOverdueWorker(repo, metrics.New(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
