package common

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/matst80/listing-filters/pkg/config"
	"github.com/matst80/listing-filters/pkg/logger"
)

// ShutdownHook is a function executed after a termination signal is received
// but before the HTTP server begins its graceful shutdown. If a hook returns
// an error it will be logged; shutdown continues regardless.
type ShutdownHook func(ctx context.Context) error

// RunServerWithShutdown starts the server and blocks until SIGINT or SIGTERM,
// then runs the hooks in order and shuts the server down.
//
// Typical usage in main:
//
//	server := common.NewServerWithTimeouts(&http.Server{Addr: ":8080", Handler: mux}, cfg.Timeouts)
//	common.RunServerWithShutdown(server, log, "filter api", cfg.Timeouts, saveHook)
func RunServerWithShutdown(server *http.Server, log logger.Logger, name string, timeouts config.TimeoutsConfig, hooks ...ShutdownHook) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, server, log, name, timeouts, hooks...)
}

// Serve runs the server until ctx is done. A listen error is returned
// without running the hooks.
func Serve(ctx context.Context, server *http.Server, log logger.Logger, name string, timeouts config.TimeoutsConfig, hooks ...ShutdownHook) error {
	hookTimeout := timeouts.Hook
	if hookTimeout <= 0 {
		hookTimeout = 5 * time.Second
	}
	log = log.WithFields(logger.Fields{"server": name})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err, ok := <-listenErr:
		if ok {
			log.WithError(err).Error("listen error", nil)
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()

	for i, h := range hooks {
		if h == nil {
			continue
		}
		hCtx, hCancel := context.WithTimeout(shutdownCtx, hookTimeout)
		if err := h(hCtx); err != nil {
			log.WithError(err).Warn("shutdown hook failed", logger.Fields{"hook": i})
		}
		if errors.Is(hCtx.Err(), context.DeadlineExceeded) {
			log.Warn("shutdown hook timed out", logger.Fields{"hook": i})
		}
		hCancel()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
		return err
	}
	log.Info("shutdown complete", nil)
	return nil
}

// NewServerWithTimeouts attaches timeout settings to an existing *http.Server or creates a new one if nil.
func NewServerWithTimeouts(base *http.Server, cfg config.TimeoutsConfig) *http.Server {
	if base == nil {
		base = &http.Server{}
	}
	base.ReadHeaderTimeout = cfg.ReadHeader
	base.ReadTimeout = cfg.Read
	base.WriteTimeout = cfg.Write
	base.IdleTimeout = cfg.Idle
	return base
}
