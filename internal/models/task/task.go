package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Priority    Priority  `json:"priority" db:"priority"`
	DueDate     *Date     `json:"dueDate,omitempty" db:"due_date"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Status string
type Priority string

const StatusTodo Status = "todo"
const StatusDoing Status = "doing"
const StatusDone Status = "done"

const PriorityLow Priority = "low"
const PriorityMedium Priority = "medium"
const PriorityHigh Priority = "high"

const ShortIDLen = 8

// Statuses в порядке колонок доски
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

// Title - заголовок колонки
func (s Status) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusDoing:
		return "Doing"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("неизвестный статус %q", raw)
	}
	return s, nil
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("неизвестный приоритет %q", raw)
	}
	return p, nil
}

// Validate проверяет инварианты перед записью в хранилище
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("пустой id")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("задача %s: пустое название", t.ID)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("задача %s: неизвестный статус %q", t.ID, t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("задача %s: неизвестный приоритет %q", t.ID, t.Priority)
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("задача %s: updatedAt раньше createdAt", t.ID)
	}
	return nil
}

// IsOverdue - срок прошёл, а задача не закрыта
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

// ShortID - первые символы id, как их показывает доска
func (t *Task) ShortID() string {
	return t.ID.String()[:ShortIDLen]
}

func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}
