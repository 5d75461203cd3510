package http

import (
	"compress/gzip"
	"compress/zlib"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/actionserver/internal/logging"
	"github.com/aretw0/actionserver/pkg/domain"
)

// maxBodyBytes bounds the decoded webhook payload.
const maxBodyBytes = 10 << 20

// Executor defines what the HTTP boundary needs from the dispatch core.
type Executor interface {
	Run(ctx context.Context, call *domain.ActionCall) (*domain.ActionResult, error)
	Actions() []domain.ActionInfo
}

// ErrorResponse is the body of every non-2xx webhook response.
type ErrorResponse struct {
	Error      string `json:"error"`
	ActionName string `json:"action_name"`
	Message    string `json:"message,omitempty"`
}

// Server serves the action endpoints over an Executor.
type Server struct {
	Executor Executor
	logger   *slog.Logger
	origins  []string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCORS sets the allowed origins. "*" allows every origin.
func WithCORS(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// NewHandler creates a new HTTP handler for the executor.
func NewHandler(exec Executor, opts ...Option) http.Handler {
	s := &Server{
		Executor: exec,
		logger:   logging.NewNop(),
		origins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/actions", s.ListActions)
	r.Post("/webhook", s.Webhook)
	r.Handle("/metrics", promhttp.Handler())

	return s.enableCORS(r)
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Encoding, Authorization")
			if origin != "*" {
				w.Header().Add("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowedOrigin(origin string) string {
	for _, o := range s.origins {
		if o == "*" {
			return "*"
		}
		if origin != "" && strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListActions handles the GET /actions request.
func (s *Server) ListActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Executor.Actions())
}

// Webhook handles the POST /webhook request.
func (s *Server) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := decodedBody(r)
	if err != nil {
		s.logger.Warn("Webhook: Unreadable request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}
	defer body.Close()

	var call domain.ActionCall
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&call); err != nil {
		s.logger.Warn("Webhook: Invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid request body: %v", err)})
		return
	}

	result, err := s.Executor.Run(r.Context(), &call)
	if err != nil {
		status, resp := errorResponse(err, call.NextAction)
		if status >= http.StatusInternalServerError {
			s.logger.Error("Webhook: Action failed", "action", resp.ActionName, "error", err)
		}
		writeJSON(w, status, resp)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// errorResponse maps a dispatch error to a status code and body.
func errorResponse(err error, requested string) (int, ErrorResponse) {
	var (
		notFound *domain.ActionNotFoundError
		rejected *domain.ActionRejectedError
		failed   *domain.ActionExecutionError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, ErrorResponse{
			Error:      err.Error(),
			ActionName: notFound.ActionName,
		}
	case errors.As(err, &rejected):
		return http.StatusBadRequest, ErrorResponse{
			Error:      rejected.Error(),
			ActionName: rejected.ActionName,
		}
	case errors.Is(err, domain.ErrMalformedRequest):
		return http.StatusBadRequest, ErrorResponse{
			Error:      err.Error(),
			ActionName: requested,
		}
	case errors.As(err, &failed):
		return http.StatusInternalServerError, ErrorResponse{
			Error:      domain.ErrActionExecution.Error(),
			ActionName: failed.ActionName,
			Message:    failed.Err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:      "internal error",
			ActionName: requested,
			Message:    err.Error(),
		}
	}
}

// decodedBody returns the request body, decompressing it according to
// Content-Encoding.
func decodedBody(r *http.Request) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding"))) {
	case "", "identity":
		return r.Body, nil
	case "deflate":
		return zlib.NewReader(r.Body)
	case "gzip":
		return gzip.NewReader(r.Body)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", r.Header.Get("Content-Encoding"))
	}
}

// writeJSON encodes v before writing the status, so an unencodable body
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Response encode failed", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{
			Error:   "internal error",
			Message: fmt.Sprintf("encode response: %v", err),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
