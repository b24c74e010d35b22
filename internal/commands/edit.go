package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"kanban/internal/config"
	"kanban/internal/exitcode"
	"kanban/internal/handlers/dto"
	"kanban/internal/store"

	"github.com/spf13/pflag"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd отправляет только явно заданные флаги
type EditCmd struct {
	flags *pflag.FlagSet

	title       string
	description string
	status      string
	priority    string
	due         string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change task fields" }
func (c *EditCmd) Usage() string {
	return "kanban edit [--title t] [--description d] [--status s] [--priority p] [--due YYYY-MM-DD] <id>"
}
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.flags = fs
	fs.StringVarP(&c.title, "title", "t", "", "")
	fs.StringVarP(&c.description, "description", "d", "", "")
	fs.StringVarP(&c.status, "status", "s", "", "")
	fs.StringVarP(&c.priority, "priority", "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	t, code := lookupTask(st, args, errOut)
	if t == nil {
		return code
	}

	req, code := c.request(errOut)
	if code != exitcode.Success {
		return code
	}

	updated, err := st.Update(ctx, t.ID, req)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Client.Quiet {
		fmt.Fprintf(out, "updated %s\n", updated.ShortID())
	}
	return exitcode.Success
}

func (c *EditCmd) request(errOut io.Writer) (dto.UpdateTaskRequest, int) {
	var req dto.UpdateTaskRequest
	changed := func(name string) bool {
		return c.flags != nil && c.flags.Changed(name)
	}

	if changed("title") {
		if strings.TrimSpace(c.title) == "" {
			fmt.Fprintln(errOut, "error: title cannot be empty")
			return req, exitcode.UserError
		}
		req.Title = &c.title
	}
	if changed("description") {
		req.Description = &c.description
	}
	if changed("status") {
		if !checkStatus(c.status, errOut) {
			return req, exitcode.UserError
		}
		status := strings.ToLower(strings.TrimSpace(c.status))
		req.Status = &status
	}
	if changed("priority") {
		if !checkPriority(c.priority, errOut) {
			return req, exitcode.UserError
		}
		priority := strings.ToLower(strings.TrimSpace(c.priority))
		req.Priority = &priority
	}
	if changed("due") {
		if !checkDue(c.due, errOut) {
			return req, exitcode.UserError
		}
		due := strings.TrimSpace(c.due)
		req.DueDate = &due
	}

	if req.Title == nil && req.Description == nil && req.Status == nil && req.Priority == nil && req.DueDate == nil {
		fmt.Fprintln(errOut, "error: nothing to update (use --title, --description, --status, --priority or --due)")
		return req, exitcode.UserError
	}
	return req, exitcode.Success
}
