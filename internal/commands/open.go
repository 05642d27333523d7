package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lumina/internal/config"
	"lumina/internal/exitcode"
	"lumina/internal/service"
	"lumina/internal/session"
	"lumina/internal/tui"
)

func init() {
	Register(&OpenCmd{})
}

// OpenCmd starts the interactive task view. It is the default command
// when lumina is run without arguments.
type OpenCmd struct{}

func (c *OpenCmd) Name() string      { return "open" }
func (c *OpenCmd) Aliases() []string { return nil }
func (c *OpenCmd) Synopsis() string  { return "Open the interactive task view" }
func (c *OpenCmd) Usage() string     { return "lumina [open] [common flags]" }
func (c *OpenCmd) NeedsAuth() bool   { return true }

func (c *OpenCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *OpenCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, auth service.Auth, args []string, in io.Reader, out, errOut io.Writer) int {
	sess := session.New(svc,
		session.WithCredentials(cfg),
		session.WithMirror(cfg),
	)

	if err := sess.Load(ctx); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			fmt.Fprintln(errOut, "error: session expired (run: lumina login)")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	model := tui.New(sess)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if model.SessionExpired() {
		fmt.Fprintln(errOut, "error: session expired (run: lumina login)")
		return exitcode.AuthError
	}
	return exitcode.Success
}
