package task

// Action - кнопка перевода карточки между колонками.
// API принимает любой переход, ограничения существуют только в интерфейсе.
type Action struct {
	Name   string
	Target Status
}

var (
	ActionStart    = Action{Name: "start", Target: StatusDoing}
	ActionBack     = Action{Name: "back", Target: StatusTodo}
	ActionComplete = Action{Name: "complete", Target: StatusDone}
	ActionReopen   = Action{Name: "reopen", Target: StatusDoing}
)

// Actions возвращает доступные переходы для статуса
func Actions(s Status) []Action {
	switch s {
	case StatusTodo:
		return []Action{ActionStart}
	case StatusDoing:
		return []Action{ActionBack, ActionComplete}
	case StatusDone:
		return []Action{ActionReopen}
	default:
		return nil
	}
}

// Allows проверяет, предлагает ли карточка в статусе from данное действие
func (a Action) Allows(from Status) bool {
	for _, candidate := range Actions(from) {
		if candidate == a {
			return true
		}
	}
	return false
}

// Label - надпись на кнопке
func (a Action) Label() string {
	switch a {
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionComplete:
		return "Complete"
	case ActionReopen:
		return "Reopen"
	default:
		return a.Name
	}
}
