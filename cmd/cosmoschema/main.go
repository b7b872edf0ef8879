package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"

	"github.com/joacominatel/cosmoschema/internal/app"
	"github.com/joacominatel/cosmoschema/internal/config"
	"github.com/joacominatel/cosmoschema/internal/database/postgres"
	"github.com/joacominatel/cosmoschema/internal/metrics"
	"github.com/joacominatel/cosmoschema/internal/server"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Bool("verbose", false, "enable verbose (debug) logging")
	flag.String("transport", config.TransportStdio, "MCP transport (stdio, http)")
	flag.String("listen-addr", "127.0.0.1:8010", "HTTP server listen address when --transport=http")
	flag.String("metrics-addr", "", "Address to listen on for prometheus metrics (disabled if empty)")
	flag.Parse()

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load(flag.CommandLine)
	if err != nil {
		return &app.ErrConfig{Cause: err}
	}

	log := newLogger(cfg.Verbose)

	if conn, err := config.ParseDSN(cfg.ConnectionString); err == nil {
		log.Info("connecting to database", "target", conn.DisplayString(), "sslmode", conn.SSLMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	metricsServerErrCh := make(chan error, 1)
	if cfg.MetricsAddr != "" {
		metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)
		go func() {
			listener, err := net.Listen("tcp", cfg.MetricsAddr)
			if err != nil {
				log.Error("failed to start prometheus metrics server listener", "error", err)
				metricsServerErrCh <- err
				return
			}
			log.Info("prometheus metrics server listening", "address", listener.Addr().String())
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.Serve(listener, mux); err != nil {
				log.Error("failed to start prometheus metrics server", "error", err)
				metricsServerErrCh <- err
			}
		}()
	}

	return app.Run(ctx, log, cfg, postgres.New(), func(ctx context.Context, lifespan *app.Lifespan) error {
		srv, err := server.New(server.Config{
			Logger:     log,
			Service:    app.NewService(lifespan),
			Version:    version,
			Transport:  cfg.Transport,
			ListenAddr: cfg.ListenAddr,
		})
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		serverErrCh := make(chan error, 1)
		go func() {
			serverErrCh <- srv.Run(ctx)
		}()

		select {
		case err := <-serverErrCh:
			return err
		case err := <-metricsServerErrCh:
			cancel()
			<-serverErrCh
			return err
		}
	})
}

func newLogger(verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	// stdout carries the stdio transport.
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}
