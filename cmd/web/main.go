package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/MisterMaks/rdrt-client/internal/gzip"
	"github.com/MisterMaks/rdrt-client/internal/logger"
	staticDeliveryInternal "github.com/MisterMaks/rdrt-client/internal/static/delivery"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server constants.
const (
	ShutdownTimeout   time.Duration = 10 * time.Second
	ReadHeaderTimeout time.Duration = 5 * time.Second

	PortKey    string = "port"
	DistDirKey string = "dist_dir"
)

// StaticHandlerInterface contains handlers of the static server.
type StaticHandlerInterface interface {
	Health(w http.ResponseWriter, r *http.Request)
	ServeSPA(w http.ResponseWriter, r *http.Request)
}

// Middlewares of the static server.
type Middlewares struct {
	RequestLogger  func(http.Handler) http.Handler
	GzipMiddleware func(http.Handler) http.Handler
}

func webRouter(staticHandler StaticHandlerInterface, middlewares *Middlewares) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.RequestLogger)
	r.Get(`/health`, staticHandler.Health)
	r.Group(func(r chi.Router) {
		r.Use(middlewares.GzipMiddleware)
		r.Get(`/*`, staticHandler.ServeSPA)
	})
	return r
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Log.Fatal("Static server failed", zap.Error(err))
	}
}

func run(args []string) error {
	config, err := NewConfig(args)
	if err != nil {
		return err
	}

	if err = logger.Initialize(config.LogLevel); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	staticHandler, err := staticDeliveryInternal.NewStaticHandler(config.DistDir)
	if err != nil {
		return err
	}

	middlewares := &Middlewares{
		RequestLogger:  logger.RequestLogger,
		GzipMiddleware: gzip.GzipMiddleware,
	}
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(config.Port),
		Handler:           webRouter(staticHandler, middlewares),
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, config)
}

func serve(ctx context.Context, server *http.Server, config *Config) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Frontend listening",
			zap.Int(PortKey, config.Port),
			zap.String(DistDirKey, config.DistDir),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down static server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
