// Package main provides the Surfboard adapter binary. It wires the
// remote task client, the session registry, and the browser tool set
// behind a newline-delimited JSON stdio transport for an AI-agent host.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/surfboard-hq/surfboard/pkg/config"
	"github.com/surfboard-hq/surfboard/pkg/host"
	"github.com/surfboard-hq/surfboard/pkg/logging"
	"github.com/surfboard-hq/surfboard/pkg/remote"
	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
	"github.com/surfboard-hq/surfboard/pkg/tools/browse"
)

const (
	// clientName and version identify this adapter in the User-Agent
	// of every outbound request
	clientName = "surfboard"
	version    = "0.1.0"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "surfboard",
		Short: "Remote browser-automation tasks as agent tool calls",
		Long: "Surfboard adapts a remote browser-automation task service into " +
			"synchronous-looking tool calls over a stdio transport.",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve tools over stdin/stdout",
		RunE:  runServe,
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s v%s\n", clientName, version)
		},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("configuration error: %w", err)
		}
		return err
	}

	// Fallback mode (stderr) is already reported by the logger itself;
	// a logging failure is not fatal to serving.
	logger, _ := logging.NewLogger("surfboard")
	defer logger.Close()

	headers := remote.NewHeaderFactory(clientName, version, cfg.APIKey)
	client := remote.NewClient(cfg.BaseURL, headers, logger)
	poller := remote.NewPoller(client, logger)
	dispatcher := remote.NewDispatcher(client, poller, logger, cfg.Project)
	registry := session.NewRegistry()

	server := host.NewServer(logger, toolkit.NewCallStats())
	tools := browse.Tools(dispatcher, registry)
	for _, tool := range tools {
		server.Register(tool)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Infof("shutting down on signal")
		cancel()
	}()

	logger.Infof("%s v%s serving %d tools against %s (project %s)",
		clientName, version, len(tools), cfg.BaseURL, cfg.Project)

	return server.Run(ctx, os.Stdin, os.Stdout)
}
