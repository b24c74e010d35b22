// Package exitcode - коды выхода kanban.
package exitcode

const (
	Success = 0

	// UserError - неверные аргументы, неизвестная задача, недопустимый переход
	UserError = 1

	// BackendError - сеть, 5xx или ошибка хранилища
	BackendError = 3
)
