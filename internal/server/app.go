// Package server wires the kvserver together: storage backend, HTTP API,
// metrics and the gRPC health service, with graceful shutdown on signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/postkeeper/internal/logging"
	"github.com/dmitrijs2005/postkeeper/internal/server/config"
	"github.com/dmitrijs2005/postkeeper/internal/server/health"
	"github.com/dmitrijs2005/postkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/postkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/postkeeper/internal/server/storage"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage storage.Storage
	metrics *metrics.Metrics
	health  *health.Server
	http    *http.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, c.LogFormat, os.Stdout)

	st, err := storage.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	m := metrics.New()
	router := httpapi.NewRouter(httpapi.Options{
		Storage:        st,
		Logger:         logger.With("module", "http_server"),
		Metrics:        m,
		MaxKeyLength:   c.MaxKeyLength,
		MaxValueLength: c.MaxValueLength,
		RateLimit:      c.RateLimit,
		RateBurst:      c.RateBurst,
	})

	return &App{
		config:  c,
		logger:  logger,
		storage: st,
		metrics: m,
		health:  health.NewServer(c.HealthAddr, logger),
		http:    &http.Server{Addr: c.HTTPAddr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	go func() {
		<-ctx.Done()
		app.health.SetServing(false)
		app.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		if err := app.http.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr, "backend", app.config.Backend)
	app.health.SetServing(true)

	if err := app.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a stop signal arrives or one of the
// servers fails, then closes the storage backend.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHealthServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		return fmt.Errorf("storage close error: %w", err)
	}

	app.logger.Info(context.Background(), "App stopped")
	return nil
}
