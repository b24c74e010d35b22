package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/handlers/dto"
	"kanban/internal/models/task"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd - форма создания карточки
type AddCmd struct {
	status      string
	priority    string
	description string
	due         string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "kanban add [--status s] [--priority p] [--description d] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.status, "status", "s", string(task.StatusTodo), "")
	fs.StringVarP(&c.priority, "priority", "p", string(task.PriorityMedium), "")
	fs.StringVarP(&c.description, "description", "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if !checkStatus(c.status, errOut) || !checkPriority(c.priority, errOut) || !checkDue(c.due, errOut) {
		return exitcode.UserError
	}

	created, err := st.Create(ctx, dto.CreateTaskRequest{
		Title:       title,
		Description: c.description,
		Status:      strings.ToLower(strings.TrimSpace(c.status)),
		Priority:    strings.ToLower(strings.TrimSpace(c.priority)),
		DueDate:     strings.TrimSpace(c.due),
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Client.Quiet {
		fmt.Fprintf(out, "created %s\n", created.ShortID())
	}
	return exitcode.Success
}
