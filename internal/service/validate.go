package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"kanban/internal/models/task"

	"github.com/go-playground/validator/v10"
)

// CreateTaskInput - данные для создания задачи
type CreateTaskInput struct {
	Title       string `field:"title" validate:"required"`
	Status      string `field:"status" validate:"required,oneof=todo doing done"`
	Priority    string `field:"priority" validate:"required,oneof=low medium high"`
	Description string `field:"description"`
	DueDate     string `field:"dueDate"`
}

// UpdateTaskInput - частичное обновление, nil означает "не менять".
// Пустые Description и DueDate очищают поле, пустой Title - ошибка.
type UpdateTaskInput struct {
	Title       *string `field:"title" validate:"omitnil,min=1"`
	Status      *string `field:"status" validate:"omitnil,oneof=todo doing done"`
	Priority    *string `field:"priority" validate:"omitnil,oneof=low medium high"`
	Description *string `field:"description"`
	DueDate     *string `field:"dueDate"`
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		in.Status == nil &&
		in.Priority == nil &&
		in.Description == nil &&
		in.DueDate == nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// translate переводит первую ошибку валидатора в BusinessError
func translate(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("валидация: %w", err)
	}

	first := validationErrs[0]
	var busErr *BusinessError
	switch first.Tag() {
	case "required":
		busErr = NewMissingField(first.Field())
	case "min":
		// min=1 на указателе: поле передано, но пустое
		busErr = NewMissingField(first.Field())
	case "oneof":
		busErr = NewValidationError(first.Field(),
			fmt.Sprintf("допустимые значения: %s", strings.ReplaceAll(first.Param(), " ", ", ")))
	default:
		busErr = NewValidationError(first.Field(), first.Tag())
	}

	if len(validationErrs) > 1 {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field())
		}
		busErr.Details["fields"] = fields
	}
	return busErr
}

func parseDueDate(raw string) (*task.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := task.ParseDate(raw)
	if err != nil {
		return nil, NewValidationError("dueDate", "ожидается дата в формате YYYY-MM-DD")
	}
	return &d, nil
}
