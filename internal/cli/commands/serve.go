package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/rowcap/internal/cli/config"
	"github.com/leapstack-labs/rowcap/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the rewrite API server",
		Long: `Start an HTTP server exposing the row cap rewriter.

Endpoints:
  POST /api/rewrite   Rewrite a statement under the configured cap
  POST /api/classify  Classify a statement and report its limit clauses
  GET  /healthz       Health check`,
		Example: `  # Start on the configured address
  rowcap serve

  # Start on a custom address
  rowcap serve --listen :9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())

			addr := cfg.Listen
			if opts.Listen != "" {
				addr = opts.Listen
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			srv := server.NewServer(server.Config{
				Addr:   addr,
				Policy: cfg.Policy(),
				Logger: logger,
			})

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting API server on %s\n", addr)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "Listen address (default: localhost:8080)")
	return cmd
}
