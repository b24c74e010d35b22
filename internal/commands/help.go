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
	Register(&HelpCmd{})
}

type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "kanban help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  kanban                                   Show the board
  kanban board
  kanban add [--status s] [--priority p] [--description d] [--due YYYY-MM-DD] <title...>
  kanban edit [--title t] [--description d] [--status s] [--priority p] [--due YYYY-MM-DD] <id>
  kanban start <id>                        To Do -> Doing
  kanban back <id>                         Doing -> To Do
  kanban complete <id>                     Doing -> Done
  kanban reopen <id>                       Done -> Doing
  kanban rm <id>
  kanban list [--status s] [--output table|json|yaml]
  kanban help

<id> is the full task id or any unique prefix shown on the board.

Common flags:
  --config <file>    Config file (default config.yml)
  --api <url>        API base URL (default http://localhost:8080)
  --timeout <d>      Request timeout (default 10s)
  --quiet            Suppress informational output
`
