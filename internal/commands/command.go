// Package commands - команды CLI kanban.
package commands

import (
	"context"
	"io"

	"kanban/internal/config"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

// Command - одна команда CLI
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis - строка для help
	Synopsis() string
	Usage() string

	// NeedsBackend: help работает без сервера, остальным нужен загруженный store
	NeedsBackend() bool

	RegisterFlags(fs *pflag.FlagSet)

	// Run получает store уже после Init (nil, если NeedsBackend() == false).
	// args - позиционные аргументы после разбора флагов. Возвращает код выхода.
	Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int
}
