package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/joacominatel/cosmoschema/internal/app"
	"github.com/joacominatel/cosmoschema/internal/config"
)

const (
	implementationName     = "CosmosDB Schema Explorer"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Logger          *slog.Logger
	Service         *app.Service
	Version         string
	Transport       string
	ListenAddr      string
	ShutdownTimeout time.Duration
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if cfg.Service == nil {
		return fmt.Errorf("service is required")
	}
	switch cfg.Transport {
	case config.TransportStdio:
	case config.TransportHTTP:
		if cfg.ListenAddr == "" {
			return fmt.Errorf("listen address is required")
		}
	default:
		return fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return nil
}

type Server struct {
	cfg        Config
	log        *slog.Logger
	mcpServer  *mcp.Server
	httpServer *http.Server
}

func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    implementationName,
		Version: cfg.Version,
	}, nil)

	if err := RegisterTableSchemaTool(cfg.Logger, mcpServer, cfg.Service); err != nil {
		return nil, fmt.Errorf("failed to register table schema tool: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		log:       cfg.Logger,
		mcpServer: mcpServer,
	}

	if cfg.Transport == config.TransportHTTP {
		handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
			return mcpServer
		}, &mcp.StreamableHTTPOptions{
			Stateless: true,
		})

		mux := http.NewServeMux()
		mux.Handle("/", handler)
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok\n"))
		})
		mux.HandleFunc("/readyz", s.readyzHandler)

		s.httpServer = &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		}
	}

	return s, nil
}

// MCPServer returns the underlying MCP server with its tools registered.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Handler returns the HTTP handler, or nil for the stdio transport.
func (s *Server) Handler() http.Handler {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	if s.httpServer == nil {
		s.log.Info("server: mcp stdio transport ready")
		if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to run stdio transport: %w", err)
		}
		return nil
	}

	serveErrCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("server: http server error", "error", err)
			serveErrCh <- fmt.Errorf("failed to listen and serve: %w", err)
		}
	}()

	s.log.Info("server: mcp streamable http listening", "listenAddr", s.cfg.ListenAddr)

	select {
	case <-ctx.Done():
		s.log.Info("server: shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	case err := <-serveErrCh:
		return err
	}
}

func (s *Server) readyzHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Service.Ping(r.Context()); err != nil {
		s.log.Warn("server: readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database not ready\n"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}
