package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"seized-page/pkg/logger"
)

// New creates the HTTP server with production timeouts
func New(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down within shutdownTimeout
func Run(ctx context.Context, server *http.Server, log *logger.Logger, shutdownTimeout time.Duration) error {
	serverErrChan := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
		close(serverErrChan)
	}()

	select {
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	case err, ok := <-serverErrChan:
		if ok {
			log.WithError(err).Error("Server failed")
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server")
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	log.Info("HTTP server shutdown complete")
	return nil
}
