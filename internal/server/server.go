// Package server wires the HTTP surface: routing, request logging, metrics,
// and the SSE stream. The API is loopback-only; the desktop overlay is the
// sole client.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jynba/worldline/internal/game"
	"github.com/jynba/worldline/internal/handler"
	"github.com/jynba/worldline/internal/ledger"
	"github.com/jynba/worldline/internal/logger"
	"github.com/jynba/worldline/internal/market"
	"github.com/jynba/worldline/internal/metrics"
	"github.com/jynba/worldline/internal/sse"
	"github.com/jynba/worldline/internal/tracker"
	"github.com/jynba/worldline/internal/worldevent"
)

// Services bundles everything the router serves.
type Services struct {
	Store      handler.Pinger
	Game       game.Service
	Tracker    tracker.Service
	Ledger     *ledger.Ledger
	Market     market.Service
	Dispatcher *worldevent.Dispatcher
	Hub        *sse.Hub
}

// Server owns the HTTP listener.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and returns the server.
func NewServer(port int, svc Services) *Server {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/events", sse.Handler(svc.Hub))

	playerHandler := handler.NewPlayerHandler(svc.Game)
	itemsHandler := handler.NewItemsHandler(svc.Tracker, svc.Game, svc.Ledger)
	worldHandler := handler.NewWorldHandler(svc.Dispatcher)
	marketHandler := handler.NewMarketHandler(svc.Market)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/player", func(r chi.Router) {
			r.Get("/", playerHandler.HandleGetPlayer)
			r.Post("/spend", playerHandler.HandleSpend)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemsHandler.HandleGetItems)
			r.Get("/claimed", itemsHandler.HandleGetClaimed)
			r.Get("/changes", itemsHandler.HandleGetChanges)
			r.Post("/poll", itemsHandler.HandlePoll)
			r.Post("/claim", itemsHandler.HandleClaim)
		})

		r.Get("/world/message", worldHandler.HandleGetMessage)

		r.Route("/market", func(r chi.Router) {
			r.Get("/characters", marketHandler.HandleGetCharacters)
			r.Post("/purchase", marketHandler.HandlePurchase)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// The overlay polls these constantly; logging them is pure noise.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") ||
			strings.HasPrefix(r.URL.Path, "/events") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
