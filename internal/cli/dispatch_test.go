package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"lumina/internal/cli"
	"lumina/internal/commands"
	"lumina/internal/config"
	"lumina/internal/exitcode"
	"lumina/internal/service"
	"lumina/internal/testutil"
)

func newDispatcher(svc service.Service) *cli.Dispatcher {
	return cli.NewDispatcher(commands.DefaultRegistry,
		func(ctx context.Context, cfg *config.Config) (service.Service, error) {
			return svc, nil
		},
		func(ctx context.Context, cfg *config.Config) (service.Auth, error) {
			return &testutil.FakeAuth{Token: "tok"}, nil
		},
	)
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	// Common flags come after the command name.
	full := append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	code := d.Run(context.Background(), full, strings.NewReader(""), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestUnknownCommand(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	code, _, stderr := run(t, d, "bogus")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "unknown command: bogus") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestFlagBeforeCommand(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), []string{"--quiet", "version"}, strings.NewReader(""), &out, &errOut)
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(errOut.String(), "unknown command: --quiet") {
		t.Errorf("unexpected stderr: %q", errOut.String())
	}
}

func TestUnknownFlag(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	code, _, stderr := run(t, d, "version", "--bogus")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "unknown flag: bogus") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestFlagNeedsArgument(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	code, _, stderr := run(t, d, "login", "--username")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "flag needs an argument") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestCommandAlias(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	// "register" is an alias for signup; the username prompt fails on
	// the empty input stream, which proves the alias dispatched.
	code, _, stderr := run(t, d, "register")
	if code != exitcode.UserError {
		t.Errorf("expected user error, got %d", code)
	}
	if !strings.Contains(stderr, "failed to read username") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestNotLoggedIn(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	code, _, stderr := run(t, d, "open")
	if code != exitcode.AuthError {
		t.Errorf("expected auth error, got %d", code)
	}
	if !strings.Contains(stderr, "not logged in (run: lumina login)") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestVersionThroughDispatcher(t *testing.T) {
	d := newDispatcher(testutil.NewFakeService())
	code, stdout, _ := run(t, d, "version")
	if code != exitcode.Success {
		t.Errorf("expected success, got %d", code)
	}
	if !strings.HasPrefix(stdout, "lumina ") {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}
