package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gatrack/internal/app"
	"gatrack/internal/config"
	"gatrack/internal/httpapi"
	"gatrack/internal/tracking"
)

type serveOptions struct {
	addr         string
	production   bool
	corsEnabled  bool
	corsOrigins  string
	maxBodyBytes int64
	turnTimeout  time.Duration
	uiIdleTTL    time.Duration
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", envOr("GATRACK_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	f.BoolVar(&opts.production, "production", false, "Run trackers in production mode")
	f.BoolVar(&opts.corsEnabled, "cors-enabled", false, "Enable CORS")
	f.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma separated allowed origins")
	f.Int64Var(&opts.maxBodyBytes, "max-body-bytes", 0, "Maximum JSON request body size (0=1MiB)")
	f.DurationVar(&opts.turnTimeout, "turn-timeout", 0, "Per-turn timeout (0=none)")
	f.DurationVar(&opts.uiIdleTTL, "ui-idle-ttl", 30*time.Minute, "Close UIs idle for this long (0=never)")
	return cmd
}

// merge applies config file values for every flag left at its default.
func (o *serveOptions) merge(cmd *cobra.Command, cfg config.Config) {
	f := cmd.Flags()
	if !f.Changed("addr") && os.Getenv("GATRACK_ADDR") == "" && cfg.Addr != "" {
		o.addr = cfg.Addr
	}
	if !f.Changed("production") {
		o.production = cfg.Production
	}
	if !f.Changed("cors-enabled") {
		o.corsEnabled = cfg.CORS.Enabled
	}
	if !f.Changed("max-body-bytes") {
		o.maxBodyBytes = cfg.MaxBodyBytes
	}
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	opts.merge(cmd, cfg)
	level, format := logLevel, logFormat
	if level == "" {
		level = cfg.LogLevel
	}
	if format == "" {
		format = cfg.LogFormat
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	origins := splitCSV(opts.corsOrigins)
	if len(origins) == 0 {
		origins = cfg.CORS.Origins
	}
	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(opts.maxBodyBytes)
	httpapi.SetTurnTimeout(opts.turnTimeout)
	httpapi.SetCORSOptions(opts.corsEnabled, origins, cfg.CORS.Methods, cfg.CORS.Headers)

	svc := app.New(app.Config{
		Registry:   reg,
		Production: opts.production,
		Logger:     &logger,
		Publisher:  eventLogger{log: logger},
		IdleTTL:    opts.uiIdleTTL,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)
	go svc.RunExpiry(ctx)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", opts.addr).Str("config", path).Int("routes", len(reg.Paths())).
			Bool("production", opts.production).Msg("gatrackd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown (Ctrl+C / SIGTERM)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	logger.Info().Msg("gatrackd stopped")
	return nil
}

// eventLogger forwards tracker lifecycle events to the process logger.
type eventLogger struct {
	log zerolog.Logger
}

func (e eventLogger) Publish(ev tracking.Event) {
	lvl := zerolog.DebugLevel
	if ev.Name == tracking.EventFlushFailed {
		lvl = zerolog.WarnLevel
	}
	e.log.WithLevel(lvl).Str("event", ev.Name).Fields(ev.Fields).Msg("tracker event")
}
