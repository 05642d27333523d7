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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "lumina help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, auth service.Auth, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  lumina                                     Open the interactive task view
  lumina login [common flags] [--username <name>]
  lumina signup [common flags] [--username <name>] [--email <addr>]
  lumina logout [common flags]
  lumina help
  lumina version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Task store base URL (default http://localhost:8000)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Keys in the task view:
  j/k or arrows    Move selection
  J/K              Reorder the selected task
  space            Cycle task status
  a                Add a task
  e                Edit the selected title
  d                Delete the selected task (with confirmation)
  tab              Cycle the status filter
  u / ctrl+z       Undo
  ctrl+r / ctrl+y  Redo
  R                Reload from the server
  q                Quit
`
