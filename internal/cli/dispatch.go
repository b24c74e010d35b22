// Package cli разбирает аргументы и запускает команды.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"kanban/internal/client"
	"kanban/internal/commands"
	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

// StoreFactory создаёт store для команды, которой нужен сервер.
// В тестах подменяется store поверх testutil.FakeAPI.
type StoreFactory func(ctx context.Context, cfg *config.Config) (*store.Store, error)

// HTTPStore - store поверх client.Client с адресом из конфига
func HTTPStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if strings.TrimSpace(cfg.Client.BaseURL) == "" {
		return nil, errors.New("api base url is empty")
	}
	return store.New(client.New(cfg.Client.BaseURL, cfg.Client.Timeout)), nil
}

type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	if factory == nil {
		factory = HTTPStore
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run разбирает аргументы и возвращает код выхода. Без аргументов - доска.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, "board", nil, out, errOut)
	}

	name := args[0]
	if name == "-h" || name == "--help" {
		return d.dispatch(ctx, "help", nil, out, errOut)
	}
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatch(ctx, name, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s (see: kanban help)\n", name)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// общие флаги, имена совпадают с ключами config.flagKeys
	fs.String("config", config.DefaultConfigFile, "")
	fs.String("api", "", "")
	fs.Duration("timeout", 0, "")
	fs.BoolP("quiet", "q", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.FromFlags(fs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	var st *store.Store
	if cmd.NeedsBackend() {
		st, err = d.factory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %s\n", err)
			return exitcode.BackendError
		}

		st.Init(ctx)
		if err := st.Err(); err != nil {
			fmt.Fprintf(errOut, "error: backend error: cannot load tasks from %s: %s\n", cfg.Client.BaseURL, err)
			return exitcode.BackendError
		}
	}

	return cmd.Run(ctx, cfg, st, fs.Args(), out, errOut)
}
