// Package server adapts real HTTP traffic into the function's event
// contract and hosts it behind the standard middleware chain.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"codescope/internal/function"
)

// Server hosts the function handler over HTTP.
type Server struct {
	Router  *chi.Mux
	Port    int
	handler *function.Handler
	logger  *slog.Logger
	timeout time.Duration
	srv     *http.Server
}

// New creates a Server wrapping the function handler.
func New(port int, requestTimeout time.Duration, handler *function.Handler, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	// Apply middleware in order
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimeoutMiddleware(requestTimeout))
	r.Use(middleware.Recoverer)

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "codescope")
	})

	s := &Server{
		Router:  r,
		Port:    port,
		handler: handler,
		logger:  logger,
		timeout: requestTimeout,
	}

	// Raw event surface: direct invocations and storage notifications are
	// posted here as-is and receive the unwrapped payload.
	r.Post("/invoke", s.handleInvoke)

	// Everything else is translated into a gateway event so route handling
	// stays inside the function's dispatch, as it does behind the managed
	// front door.
	r.HandleFunc("/*", s.handleGateway)

	return s
}

// Start begins serving. Blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting server", slog.Int("port", s.Port))
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.timeout + 10*time.Second,
	}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// handleInvoke passes the posted body through as a raw platform event.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		AddError(r.Context(), err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	requestID := GetRequestID(r.Context())
	payload := s.handler.Invoke(r.Context(), body, requestID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// handleGateway wraps the HTTP request into a gateway event, invokes the
// function, and unwraps the envelope back onto the wire.
func (s *Server) handleGateway(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		AddError(r.Context(), err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	event := function.GatewayEvent{
		HTTPMethod: r.Method,
		Path:       r.URL.Path,
	}
	if len(body) > 0 {
		encoded, merr := json.Marshal(string(body))
		if merr != nil {
			http.Error(w, "Failed to encode request body", http.StatusInternalServerError)
			return
		}
		event.Body = encoded
	}

	raw, err := json.Marshal(event)
	if err != nil {
		http.Error(w, "Failed to encode gateway event", http.StatusInternalServerError)
		return
	}

	requestID := GetRequestID(r.Context())
	payload := s.handler.Invoke(r.Context(), raw, requestID)

	envelope, ok := payload.(function.APIResponse)
	if !ok {
		// Gateway events always produce an envelope; anything else means a
		// bug in the dispatch.
		s.logger.Error("gateway invocation returned unexpected payload shape",
			slog.String("request_id", requestID))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	for k, v := range envelope.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(envelope.StatusCode)
	io.WriteString(w, envelope.Body)
}
