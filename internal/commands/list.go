package commands

import (
	"context"
	"fmt"
	"io"

	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/models/task"
	"kanban/internal/output"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd - плоский список без колонок
type ListCmd struct {
	status string
	format string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "kanban list [--status s] [--output table|json|yaml]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.status, "status", "s", "", "")
	fs.StringVarP(&c.format, "output", "o", string(output.FormatTable), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid output format: %s (want table, json or yaml)\n", c.format)
		return exitcode.UserError
	}

	tasks := st.Tasks()
	if c.status != "" {
		status, err := task.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid status: %s (want todo, doing or done)\n", c.status)
			return exitcode.UserError
		}
		tasks = st.ByStatus(status)
	}

	if err := output.Write(out, format, tasks); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
