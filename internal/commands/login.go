package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"lumina/internal/config"
	"lumina/internal/exitcode"
	"lumina/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	username string
}

// SetUsername sets the username (for testing).
func (c *LoginCmd) SetUsername(name string) {
	c.username = name
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate and store a token" }
func (c *LoginCmd) Usage() string     { return "lumina login [common flags] [--username <name>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, auth service.Auth, args []string, in io.Reader, out, errOut io.Writer) int {
	p := newPrompter(in, errOut)

	username := c.username
	if username == "" {
		var err error
		username, err = p.Line("Username")
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read username: %v\n", err)
			return exitcode.UserError
		}
	}
	if username == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}

	password, err := p.Password("Password")
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
		return exitcode.UserError
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	token, err := auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			fmt.Fprintln(errOut, "error: invalid credentials")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if err := cfg.WriteToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
