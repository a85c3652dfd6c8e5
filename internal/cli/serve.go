package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/soyeahso/jj-mcp-server/internal/config"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve jj tools over MCP stdio (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	if issues := config.Validate(&cfg); len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, issue := range issues {
			msgs[i] = issue.String()
		}
		return &config.ConfigError{Message: "invalid configuration: " + strings.Join(msgs, "; ")}
	}

	closer, err := openLog()
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()

	srv, err := newServer(newExecutor())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("jj", cfg.JJ.Binary).
		Dur("timeout", cfg.JJ.Timeout).
		Strs("allowedPaths", cfg.Security.AllowedPaths).
		Msg("jj MCP server starting")

	if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("server stopped")
		return err
	}
	log.Info().Msg("server shutting down")
	return nil
}
