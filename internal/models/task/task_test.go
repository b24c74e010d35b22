package task_test

import (
	"encoding/json"
	"testing"
	"time"

	"kanban/internal/models/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected task.Status
		wantErr  bool
	}{
		{raw: "todo", expected: task.StatusTodo},
		{raw: " Doing ", expected: task.StatusDoing},
		{raw: "DONE", expected: task.StatusDone},
		{raw: "blocked", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := task.ParseStatus(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	p, err := task.ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, task.PriorityHigh, p)

	_, err = task.ParsePriority("urgent")
	assert.Error(t, err)
}

// TestActions проверяет кнопки карточки для каждого статуса
func TestActions(t *testing.T) {
	assert.Equal(t, []task.Action{task.ActionStart}, task.Actions(task.StatusTodo))
	assert.Equal(t, []task.Action{task.ActionBack, task.ActionComplete}, task.Actions(task.StatusDoing))
	assert.Equal(t, []task.Action{task.ActionReopen}, task.Actions(task.StatusDone))
	assert.Empty(t, task.Actions(task.Status("unknown")))

	assert.True(t, task.ActionComplete.Allows(task.StatusDoing))
	assert.False(t, task.ActionComplete.Allows(task.StatusTodo))
	assert.Equal(t, "Reopen", task.ActionReopen.Label())
}

func TestDate_JSON(t *testing.T) {
	var d task.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01"`), &d))
	assert.Equal(t, "2024-05-01", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T15:04:05Z"`), &d))
	assert.Equal(t, "2024-05-01", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240501`), &d))
}

func TestTask_JSONFieldNames(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	due := task.NewDate(now)
	tsk := task.Task{
		ID:        uuid.MustParse("6f1c1d3e-8a7b-4c1a-9a39-0f1b2c3d4e5f"),
		Title:     "Buy milk",
		Status:    task.StatusTodo,
		Priority:  task.PriorityLow,
		DueDate:   &due,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(tsk)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "6f1c1d3e-8a7b-4c1a-9a39-0f1b2c3d4e5f", raw["id"])
	assert.Equal(t, "2024-01-02", raw["dueDate"])
	assert.Contains(t, raw, "createdAt")
	assert.Contains(t, raw, "updatedAt")
	assert.NotContains(t, raw, "description")
}

func TestTask_Validate(t *testing.T) {
	now := time.Now()
	valid := func() *task.Task {
		return &task.Task{
			ID:        uuid.New(),
			Title:     "t",
			Status:    task.StatusTodo,
			Priority:  task.PriorityMedium,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	assert.NoError(t, valid().Validate())

	broken := valid()
	broken.Status = "blocked"
	assert.Error(t, broken.Validate())

	broken = valid()
	broken.Priority = ""
	assert.Error(t, broken.Validate())

	broken = valid()
	broken.Title = "  "
	assert.Error(t, broken.Validate())

	broken = valid()
	broken.UpdatedAt = now.Add(-time.Second)
	assert.Error(t, broken.Validate())
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	yesterday := task.NewDate(now.AddDate(0, 0, -1))
	today := task.NewDate(now)

	tsk := &task.Task{Status: task.StatusDoing, DueDate: &yesterday}
	assert.True(t, tsk.IsOverdue(now))

	tsk.Status = task.StatusDone
	assert.False(t, tsk.IsOverdue(now))

	tsk = &task.Task{Status: task.StatusTodo, DueDate: &today}
	assert.False(t, tsk.IsOverdue(now))

	tsk = &task.Task{Status: task.StatusTodo}
	assert.False(t, tsk.IsOverdue(now))
}

func TestTask_ApplyOptions(t *testing.T) {
	due := task.NewDate(time.Now())
	tsk := &task.Task{Title: "old", Status: task.StatusTodo, Priority: task.PriorityLow, DueDate: &due}

	tsk.Apply(
		task.WithTitle("new"),
		task.WithStatus(""),
		task.WithPriority(task.PriorityHigh),
		task.WithDueDate(nil),
	)

	assert.Equal(t, "new", tsk.Title)
	assert.Equal(t, task.StatusTodo, tsk.Status)
	assert.Equal(t, task.PriorityHigh, tsk.Priority)
	assert.Nil(t, tsk.DueDate)
}
