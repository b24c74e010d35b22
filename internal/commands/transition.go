package commands

import (
	"context"
	"fmt"
	"io"

	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/models/task"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

func init() {
	for _, action := range []task.Action{task.ActionStart, task.ActionBack, task.ActionComplete, task.ActionReopen} {
		Register(&TransitionCmd{Action: action})
	}
}

// TransitionCmd - кнопка на карточке. Переход, которого карточка
// в текущей колонке не предлагает, отклоняется до запроса к серверу.
type TransitionCmd struct {
	Action task.Action
}

func (c *TransitionCmd) Name() string      { return c.Action.Name }
func (c *TransitionCmd) Aliases() []string { return nil }
func (c *TransitionCmd) Synopsis() string {
	return fmt.Sprintf("Move a task to %s", c.Action.Target.Title())
}
func (c *TransitionCmd) Usage() string      { return fmt.Sprintf("kanban %s <id>", c.Action.Name) }
func (c *TransitionCmd) NeedsBackend() bool { return true }

func (c *TransitionCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *TransitionCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(st, args, errOut)
	if t == nil {
		return code
	}

	if !c.Action.Allows(t.Status) {
		fmt.Fprintf(errOut, "error: cannot %s a task in %s\n", c.Action.Name, t.Status.Title())
		return exitcode.UserError
	}

	moved, err := st.MoveTask(ctx, t.ID, c.Action.Target)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Client.Quiet {
		fmt.Fprintf(out, "moved %s to %s\n", moved.ShortID(), moved.Status.Title())
	}
	return exitcode.Success
}
