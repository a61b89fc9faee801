package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/logging"
	"github.com/aretw0/pushdown/pkg/adapters/file"
	httpAdapter "github.com/aretw0/pushdown/pkg/adapters/http"
	"github.com/aretw0/pushdown/pkg/adapters/mcp"
	"github.com/aretw0/pushdown/pkg/adapters/redis"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/persistence/middleware"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RedisAddrEnv is read when --redis is not given.
const RedisAddrEnv = "PUSHDOWN_REDIS_ADDR"

// StoreKeyEnv holds a base64 AES-256 key; when set, stored runs are encrypted at rest.
const StoreKeyEnv = "PUSHDOWN_STORE_KEY"

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	EngineOptions

	Port string
	// RedisAddr selects the Redis run store; empty falls back to StoreDir.
	RedisAddr string
	RedisTTL  time.Duration
	StoreDir  string
	// Redact masks stored runs whose input matches any of these patterns.
	Redact []string
	// StoreKey encrypts stored runs; empty falls back to StoreKeyEnv.
	StoreKey string
}

// storeCloser is implemented by stores holding a connection.
type storeCloser interface {
	Close() error
}

// NewServerHandler builds the HTTP handler with its run store and a private metrics registry.
// The returned cleanup releases the store.
func NewServerHandler(ctx context.Context, opts ServeOptions, logger *slog.Logger) (http.Handler, func(), error) {
	store, err := createStore(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c, ok := store.(storeCloser); ok {
			if err := c.Close(); err != nil {
				logger.Warn("failed to close run store", "error", err)
			}
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	engine, err := createEngine(opts.EngineOptions, logger,
		pushdown.WithStore(store),
		pushdown.WithMetrics(metrics),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	handler := httpAdapter.NewHandler(engine,
		httpAdapter.WithStore(store),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
	)
	return handler, cleanup, nil
}

func createStore(ctx context.Context, opts ServeOptions) (ports.RunStore, error) {
	base, err := createBaseStore(ctx, opts)
	if err != nil {
		return nil, err
	}

	mws, err := storeMiddlewares(opts)
	if err != nil {
		if c, ok := base.(storeCloser); ok {
			_ = c.Close()
		}
		return nil, err
	}
	if len(mws) == 0 {
		return base, nil
	}
	return &closingStore{RunStore: middleware.Chain(base, mws...), base: base}, nil
}

func storeMiddlewares(opts ServeOptions) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware

	if len(opts.Redact) > 0 {
		redact, err := middleware.NewRedactionMiddleware(opts.Redact)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern: %w", err)
		}
		mws = append(mws, redact)
	}

	encoded := opts.StoreKey
	if encoded == "" {
		encoded = os.Getenv(StoreKeyEnv)
	}
	if encoded != "" {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid store key: %w", err)
		}
		encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, fmt.Errorf("invalid store key: %w", err)
		}
		mws = append(mws, encrypt)
	}
	return mws, nil
}

// closingStore keeps the base store reachable for Close once it is wrapped.
type closingStore struct {
	ports.RunStore
	base ports.RunStore
}

func (s *closingStore) Close() error {
	if c, ok := s.base.(storeCloser); ok {
		return c.Close()
	}
	return nil
}

func createBaseStore(ctx context.Context, opts ServeOptions) (ports.RunStore, error) {
	addr := opts.RedisAddr
	if addr == "" {
		addr = os.Getenv(RedisAddrEnv)
	}
	if addr == "" {
		return file.NewStore(opts.StoreDir), nil
	}

	var redisOpts []redis.Option
	if opts.RedisTTL > 0 {
		redisOpts = append(redisOpts, redis.WithTTL(opts.RedisTTL))
	}
	store := redis.New(addr, "", 0, redisOpts...)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return store, nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := logging.New(slog.LevelInfo)
	if opts.Debug {
		logger = logging.New(slog.LevelDebug)
	}

	handler, cleanup, err := NewServerHandler(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting pushdown server", "address", srv.Addr, "dir", opts.RepoPath)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	EngineOptions

	// Port selects the SSE transport; zero serves on stdio.
	Port int
}

// ServeMCP exposes the automata as MCP tools.
// Logs always go to Stderr since stdio carries the protocol.
func ServeMCP(ctx context.Context, opts MCPOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	engine, err := createEngine(opts.EngineOptions, logger)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(engine, logger)
	if opts.Port == 0 {
		logger.Info("Starting pushdown MCP server (stdio)")
		return srv.ServeStdio()
	}

	logger.Info("Starting pushdown MCP server (SSE)", "port", opts.Port)
	return srv.ServeSSE(ctx, opts.Port)
}
