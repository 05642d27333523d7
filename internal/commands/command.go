// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"lumina/internal/config"
	"lumina/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a stored
	// credential and a task store connection. Commands like help,
	// version, login, signup, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, server URL).
	// svc is nil if NeedsAuth() returns false.
	// auth is always provided (the auth gate needs no credential).
	// in is the interactive input stream for prompts.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, auth service.Auth, args []string, in io.Reader, out, errOut io.Writer) int
}
