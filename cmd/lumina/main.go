// Package main is the entry point for the lumina CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lumina/internal/backend/luminahttp"
	"lumina/internal/cli"
	"lumina/internal/commands"
	"lumina/internal/config"
	"lumina/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Task store client with the stored credential attached
	svcFactory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		token, err := cfg.ReadToken()
		if err != nil {
			return nil, err
		}
		return luminahttp.New(cfg.ServerURL, token), nil
	}

	// Auth gate client; login and signup carry no credential
	authFactory := func(ctx context.Context, cfg *config.Config) (service.Auth, error) {
		return luminahttp.New(cfg.ServerURL, ""), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, svcFactory, authFactory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(code)
}
