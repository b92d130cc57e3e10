package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"facilitator/adapters/memory"
	"facilitator/adapters/metrics"
	"facilitator/adapters/myredis"
	"facilitator/domain"
	"facilitator/handlers"
	"facilitator/interfaces"
	"facilitator/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "facilitator:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, config *FacilitatorConfig) error {
	logWriter, err := openLogWriter(config.LogFile)
	if err != nil {
		return err
	}
	defer logWriter.Close()

	logger := newLogger(logWriter)

	ln, err := listen(config.ListenAddr())
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "err", err)
		return err
	}
	defer ln.Close()

	addr := ln.Addr().(*net.TCPAddr)
	level.Info(logger).Log(
		"msg", "start",
		"addr", domain.FormatHostPort(addr.IP.String(), addr.Port),
		"store_backend", config.StoreBackend,
		"metrics_addr", config.MetricsAddr,
	)

	if config.Daemonize && !isDaemonChild() {
		level.Info(logger).Log("msg", "daemonizing")
		err := spawnDaemon(ln)
		if err == nil {
			return nil
		}
		level.Warn(logger).Log("msg", "Failed to daemonize, staying in foreground", "err", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var store interfaces.RegistrationStore
	{
		backend, closeBackend, err := newStore(ctx, config, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create registration store", "err", err)
			return err
		}
		defer closeBackend()

		store, err = metrics.NewStore(backend, registry)
		if err != nil {
			return fmt.Errorf("can't register store metrics, err: %w", err)
		}
	}

	e := newEcho(store, logger)
	e.Listener = ln

	var metricsServer *http.Server
	if config.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:              config.MetricsAddr,
			Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(ln.Addr().String()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	if metricsServer != nil {
		g.Go(func() error {
			level.Info(logger).Log("msg", "Starting metrics server", "addr", metricsServer.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		level.Info(logger).Log("msg", "Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				level.Error(logger).Log("msg", "Error during metrics server shutdown", "err", err)
			}
		}
		return nil
	})

	err = g.Wait()
	if err != nil {
		level.Error(logger).Log("msg", "Server stopped with error", "err", err)
		return err
	}
	level.Info(logger).Log("msg", "Server stopped")
	return nil
}

// openLogWriter opens path for appending, or returns stdout when path is empty.
func openLogWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("can't open log file %s, err: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func newLogger(w io.Writer) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	return logger
}

// newStore builds the configured backend. The returned func releases it.
func newStore(ctx context.Context, config *FacilitatorConfig, logger log.Logger) (interfaces.RegistrationStore, func(), error) {
	switch config.StoreBackend {
	case storeBackendRedis:
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis client: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		store := myredis.NewStore(redisClient, config.Redis.KeyPrefix)
		if err := store.Reset(pingCtx); err != nil {
			redisClient.Close()
			return nil, nil, err
		}
		level.Info(logger).Log("msg", "Connected to Redis", "key_prefix", config.Redis.KeyPrefix)
		return store, func() { redisClient.Close() }, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}

func newEcho(store interfaces.RegistrationStore, logger log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(handlers.NewRequestLogger(logger))
	service.RegisterErrorHandler(e, logger)
	handlers.RegisterHandlers(e, handlers.NewHTTPServer(store, logger))
	return e
}
