package store

import (
	"errors"
	"fmt"
	"strings"

	"kanban/internal/models/task"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound = errors.New("задача не найдена")
	ErrAmbiguousRef = errors.New("префикс подходит к нескольким задачам")
)

func findByRef(tasks []*task.Task, ref string) (*task.Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return nil, fmt.Errorf("пустой id: %w", ErrTaskNotFound)
	}

	if id, err := uuid.Parse(ref); err == nil {
		for _, t := range tasks {
			if t.ID == id {
				return t.Clone(), nil
			}
		}
		return nil, fmt.Errorf("%s: %w", ref, ErrTaskNotFound)
	}

	var match *task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID.String(), ref) {
			if match != nil {
				return nil, fmt.Errorf("%s: %w", ref, ErrAmbiguousRef)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%s: %w", ref, ErrTaskNotFound)
	}
	return match.Clone(), nil
}
