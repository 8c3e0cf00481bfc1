package cli

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/roach88/techbar/internal/catalog"
	"github.com/roach88/techbar/internal/config"
	"github.com/roach88/techbar/internal/engine"
	"github.com/roach88/techbar/internal/ledger"
	"github.com/roach88/techbar/internal/observability"
	"github.com/roach88/techbar/internal/store"
)

// env is what commands touching the order database share.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *store.Store
	ledger   *ledger.Ledger
	registry *prometheus.Registry
	metrics  *observability.Metrics
}

// loadConfig resolves settings from --config and --db.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

// newLogger writes to the command's stderr at the configured level.
func newLogger(cmd *cobra.Command, opts *RootOptions, cfg config.Config) (*slog.Logger, error) {
	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid log level", err)
	}
	return observability.NewLogger(cmd.ErrOrStderr(), level, opts.Verbose), nil
}

// loadCatalog reads path, or the embedded menu when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// openEnv loads the configuration and opens the order database.
// Callers must Close the env.
func openEnv(cmd *cobra.Command, opts *RootOptions) (*env, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd, opts, cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	reg := prometheus.NewRegistry()
	return &env{
		cfg:    cfg,
		logger: logger,
		store:  st,
		ledger: ledger.New(st,
			ledger.WithDateLayout(cfg.DateLayout),
			ledger.WithLogger(logger),
		),
		registry: reg,
		metrics:  observability.NewMetrics(reg),
	}, nil
}

// newEngine builds an idle engine over the env's ledger.
func (e *env) newEngine(opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithLogger(e.logger),
		engine.WithMetrics(e.metrics),
	}
	return engine.New(e.ledger, append(base, opts...)...)
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing database", "error", err)
	}
}

func formatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
