package commands

import (
	"context"
	"fmt"
	"io"

	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

func init() {
	Register(&RmCmd{})
}

type RmCmd struct{}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "kanban rm <id>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(st, args, errOut)
	if t == nil {
		return code
	}

	if err := st.Delete(ctx, t.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Client.Quiet {
		fmt.Fprintf(out, "deleted %s\n", t.ShortID())
	}
	return exitcode.Success
}
