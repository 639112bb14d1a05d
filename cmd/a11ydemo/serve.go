package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11ylab/a11ydemo"
	"github.com/a11ylab/a11ydemo/internal/config"
	"github.com/a11ylab/a11ydemo/internal/telemetry"
)

// telemetryFlushTimeout bounds the final span export on exit.
const telemetryFlushTimeout = 5 * time.Second

type serveOptions struct {
	configPath  string
	port        int
	host        string
	logLevel    string
	printConfig bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		Long: `Start the demo server.

Configuration is read from a11ydemo.json in the working directory (or
the file given by --config), then from A11YDEMO_* environment variables,
then from flags.

Examples:
  a11ydemo serve
  a11ydemo serve --port=3000
  a11ydemo serve --config=prod.json --host=0.0.0.0
  A11YDEMO_LOG_FORMAT=json a11ydemo serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default a11ydemo.json if present)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from a11ydemo.json)")
	cmd.Flags().StringVarP(&opts.host, "host", "H", "", "Host to bind to (default from a11ydemo.json)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.printConfig, "print-config", false, "Print the effective configuration and exit")

	return cmd
}

func runServe(cmd *cobra.Command, opts serveOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.printConfig {
		data, err := cfg.JSON()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	app, err := a11ydemo.New(cfg, a11ydemo.WithLogger(logger))
	if err != nil {
		return err
	}

	printBanner(out)
	fmt.Fprintln(out, "  serve")
	fmt.Fprintln(out)
	success(out, "Listening on %s", cfg.URL())
	if path := cfg.Path(); path != "" {
		info(out, "Config: %s", path)
	}
	if cfg.Server.Metrics {
		info(out, "Metrics: %s/metrics", cfg.URL())
	}
	fmt.Fprintln(out)

	return app.Run(ctx)
}

// loadConfig layers the config file, environment and flags, then
// validates the result.
func loadConfig(opts serveOptions) (*config.Config, error) {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.port > 0 {
		cfg.Server.Port = opts.port
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the validated log settings.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel()
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
