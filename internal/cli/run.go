package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/roach88/techbar/internal/engine"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Page        string
	MetricsAddr string

	// IDGenerator allows overriding item and order ids (for testing).
	// If nil, the engine uses UUIDv7 ids.
	IDGenerator engine.IDGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an order session",
		Long: `Start an order session on standard input.

Each line is one operator action:

  page <category>              show a menu page
  tap <row> <column>           tap a price cell of the current page
  swipe <from-x> <to-x> [el..] swipe across the page (el: touched elements)
  <event> [{field: value}]     dispatch an engine event, e.g.
                               toggle_order_mode
                               increment_drink {option: Piña}
                               delete_order {id: 0192...}
  quit                         end the session

Completed orders are saved to the configured database.

Example:
  techbar run --db ./techbar.db --page vodka
  techbar run --config kiosk.toml --metrics-addr :9090 < session.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Page, "page", "", "category shown first (default: the first category)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runSession(opts *RunOptions, cmd *cobra.Command) error {
	e, err := openEnv(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := loadCatalog(e.cfg.Catalog)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.MetricsAddr != "" {
		shutdown := serveMetrics(opts.MetricsAddr, e.registry, e.logger)
		defer shutdown()
	}

	var engOpts []engine.Option
	if opts.IDGenerator != nil {
		engOpts = append(engOpts, engine.WithIDGenerator(opts.IDGenerator))
	}
	s := newSession(e, cat, formatter(cmd, opts.RootOptions), engOpts...)

	first := opts.Page
	if first == "" {
		first = cat.Keys()[0]
	}
	if err := s.open(first); err != nil {
		return WrapExitError(ExitCommandError, "failed to open page", err)
	}

	e.logger.Info("session started", "db", e.cfg.Database, "page", first)
	if err := s.serve(ctx, cmd.InOrStdin()); err != nil {
		return WrapExitError(ExitFailure, "session error", err)
	}
	e.logger.Info("session ended", "events", s.engine.Seq())
	return nil
}

// serveMetrics exposes reg on addr/metrics until the returned func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", "error", err)
		}
	}
}
