// Package api serves the VSVDB record codec and payload library over HTTP.
//
// All routes live under /api/v1 and answer with the APIResponse envelope.
// When an API key is configured every /api/v1 route requires the X-API-Key
// header. /metrics is never protected.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the HTTP handler for s
func NewRouter(s *Server) http.Handler {
	metrics := s.metrics
	if metrics == nil {
		metrics = NewMetrics()
		s.metrics = metrics
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Codec operations
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))
		r.Post("/encode", metrics.InstrumentHandler("POST", "/api/v1/encode", s.handleEncode))
		r.Post("/lldv", metrics.InstrumentHandler("POST", "/api/v1/lldv", s.handleLLDV))
		r.Get("/fields", metrics.InstrumentHandler("GET", "/api/v1/fields", s.handleFields))

		// Payload library
		r.Get("/payloads", metrics.InstrumentHandler("GET", "/api/v1/payloads", s.handleListPayloads))
		r.Get("/payloads/{name}", metrics.InstrumentHandler("GET", "/api/v1/payloads/{name}", s.handleGetPayload))
		r.Put("/payloads/{name}", metrics.InstrumentHandler("PUT", "/api/v1/payloads/{name}", s.handlePutPayload))
		r.Delete("/payloads/{name}", metrics.InstrumentHandler("DELETE", "/api/v1/payloads/{name}", s.handleDeletePayload))
		r.Get("/payloads/{name}/history", metrics.InstrumentHandler("GET", "/api/v1/payloads/{name}/history", s.handlePayloadHistory))
	})

	return r
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, lib PayloadLibrary, config ServerConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	server := NewServer(lib, config, NewMetrics(), logger)

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting vsvdb REST API server", "addr", addr, "auth", config.APIKey != "")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down REST API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
