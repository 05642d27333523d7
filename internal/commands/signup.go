package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"lumina/internal/config"
	"lumina/internal/exitcode"
	"lumina/internal/service"
)

func init() {
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	username string
	email    string
}

// SetUsername sets the username (for testing).
func (c *SignupCmd) SetUsername(name string) { c.username = name }

// SetEmail sets the email (for testing).
func (c *SignupCmd) SetEmail(email string) { c.email = email }

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string {
	return "lumina signup [common flags] [--username <name>] [--email <addr>]"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.username, "u", "", "")
	fs.StringVar(&c.email, "email", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, auth service.Auth, args []string, in io.Reader, out, errOut io.Writer) int {
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

	email := c.email
	if email == "" {
		var err error
		email, err = p.Line("Email")
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read email: %v\n", err)
			return exitcode.UserError
		}
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
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

	confirm, err := p.Password("Confirm password")
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
		return exitcode.UserError
	}
	// Mismatched confirmation is rejected before any network call.
	if confirm != password {
		fmt.Fprintln(errOut, "error: passwords do not match")
		return exitcode.UserError
	}

	token, err := auth.Signup(ctx, username, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
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
