package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kanban/internal/client"
	"kanban/internal/exitcode"
	"kanban/internal/models/task"
	"kanban/internal/store"
)

// reportError печатает ошибку и выбирает код выхода: отказ сервера 4xx -
// ошибка пользователя, всё остальное (сеть, 5xx) - ошибка бэкенда
func reportError(errOut io.Writer, err error) int {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
		return exitcode.UserError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// lookupTask разбирает единственный аргумент <id> и ищет задачу в store
func lookupTask(st *store.Store, args []string, errOut io.Writer) (*task.Task, int) {
	switch {
	case len(args) == 0:
		fmt.Fprintln(errOut, "error: task id required")
		return nil, exitcode.UserError
	case len(args) > 1:
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return nil, exitcode.UserError
	}

	ref := args[0]
	t, err := st.Find(ref)
	switch {
	case errors.Is(err, store.ErrAmbiguousRef):
		fmt.Fprintf(errOut, "error: ambiguous task id: %s\n", ref)
		return nil, exitcode.UserError
	case err != nil:
		fmt.Fprintf(errOut, "error: task not found: %s\n", ref)
		return nil, exitcode.UserError
	}
	return t, exitcode.Success
}

func checkStatus(raw string, errOut io.Writer) bool {
	if _, err := task.ParseStatus(raw); err != nil {
		fmt.Fprintf(errOut, "error: invalid status: %s (want todo, doing or done)\n", raw)
		return false
	}
	return true
}

func checkPriority(raw string, errOut io.Writer) bool {
	if _, err := task.ParsePriority(raw); err != nil {
		fmt.Fprintf(errOut, "error: invalid priority: %s (want low, medium or high)\n", raw)
		return false
	}
	return true
}

// checkDue: пустая строка допустима и означает "без срока"
func checkDue(raw string, errOut io.Writer) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	if _, err := task.ParseDate(raw); err != nil {
		fmt.Fprintf(errOut, "error: invalid due date: %s (want YYYY-MM-DD)\n", raw)
		return false
	}
	return true
}
