package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/output"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

func init() {
	Register(&BoardCmd{})
}

// BoardCmd рисует три колонки доски
type BoardCmd struct {
	now func() time.Time
}

// SetNow подменяет часы (для тестов)
func (c *BoardCmd) SetNow(now func() time.Time) {
	c.now = now
}

func (c *BoardCmd) Name() string       { return "board" }
func (c *BoardCmd) Aliases() []string  { return []string{"b"} }
func (c *BoardCmd) Synopsis() string   { return "Show the board" }
func (c *BoardCmd) Usage() string      { return "kanban board" }
func (c *BoardCmd) NeedsBackend() bool { return true }

func (c *BoardCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	output.Board(out, st.Grouped(), now())
	return exitcode.Success
}
