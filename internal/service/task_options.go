package service

import (
	"time"

	"github.com/google/uuid"
)

type Option func(*TaskService)

// WithClock подменяет источник времени (тесты)
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *TaskService) {
		s.newID = newID
	}
}

func systemClock() time.Time {
	return time.Now()
}
