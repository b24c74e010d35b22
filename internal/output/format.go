// Package output - вывод доски и списков в терминал.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"kanban/internal/models/task"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat принимает table, json или yaml без учёта регистра
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Board рисует колонки в порядке доски:
//
//	To Do (1)
//	  1a2b3c4d  [High]    Write report  due 2024-04-01 (overdue)  > start
//	            quarterly numbers
func Board(w io.Writer, grouped map[task.Status][]*task.Task, now time.Time) {
	for i, status := range task.Statuses {
		if i > 0 {
			fmt.Fprintln(w)
		}
		tasks := grouped[status]
		fmt.Fprintf(w, "%s (%d)\n", status.Title(), len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintln(w, "  (empty)")
			continue
		}
		for _, t := range tasks {
			Card(w, t, now)
		}
	}
}

// Card - строка карточки и, если есть, строка описания
func Card(w io.Writer, t *task.Task, now time.Time) {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s  %-8s  %s", t.ShortID(), "["+t.Priority.Label()+"]", normalize(t.Title))

	if t.DueDate != nil {
		fmt.Fprintf(&b, "  due %s", t.DueDate)
		if t.IsOverdue(now) {
			b.WriteString(" (overdue)")
		}
	}

	if actions := task.Actions(t.Status); len(actions) > 0 {
		names := make([]string, 0, len(actions))
		for _, a := range actions {
			names = append(names, a.Name)
		}
		fmt.Fprintf(&b, "  > %s", strings.Join(names, ", "))
	}

	fmt.Fprintln(w, b.String())

	if desc := normalize(t.Description); desc != "" {
		fmt.Fprintf(w, "  %s  %s\n", strings.Repeat(" ", task.ShortIDLen), desc)
	}
}

func Table(w io.Writer, tasks []*task.Task) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tDUE\tTITLE")
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ShortID(), t.Status, t.Priority, due, normalize(t.Title))
	}
	return tw.Flush()
}

// JSON - задачи в том же виде, что отдаёт API
func JSON(w io.Writer, tasks []*task.Task) error {
	if tasks == nil {
		tasks = []*task.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

type yamlTask struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description,omitempty"`
	Status      string     `yaml:"status"`
	Priority    string     `yaml:"priority"`
	DueDate     *task.Date `yaml:"dueDate,omitempty"`
	CreatedAt   time.Time  `yaml:"createdAt"`
	UpdatedAt   time.Time  `yaml:"updatedAt"`
}

// YAML с теми же именами полей, что и в JSON
func YAML(w io.Writer, tasks []*task.Task) error {
	rows := make([]yamlTask, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, yamlTask{
			ID:          t.ID.String(),
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			DueDate:     t.DueDate,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func Write(w io.Writer, format Format, tasks []*task.Task) error {
	switch format {
	case FormatJSON:
		return JSON(w, tasks)
	case FormatYAML:
		return YAML(w, tasks)
	default:
		return Table(w, tasks)
	}
}

// normalize склеивает переводы строк и пробелы, карточка остаётся в одну строку
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
