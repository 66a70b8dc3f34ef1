// Package server provides the HTTP REST API for resume extraction.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Surya0265/CareerNav/internal/db"
	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/logger"
	"github.com/Surya0265/CareerNav/internal/server/ratelimit"
)

// DefaultMaxUploadBytes bounds multipart uploads when Options leaves it unset.
const DefaultMaxUploadBytes = 16 << 20

// maxJSONBodyBytes bounds JSON request bodies.
const maxJSONBodyBytes = 4 << 20

// Store persists extraction records. *db.DB satisfies it.
type Store interface {
	SaveExtraction(ctx context.Context, rec *db.ExtractionRecord) error
	GetExtraction(ctx context.Context, id uuid.UUID) (*db.ExtractionRecord, error)
	GetLatestExtractionByHash(ctx context.Context, contentHash, settings string) (*db.ExtractionRecord, error)
	ListExtractions(ctx context.Context, limit int) ([]db.ExtractionRecord, error)
}

// ResultCache caches results by extractor settings and content hash.
// *cache.Cache satisfies it.
type ResultCache interface {
	Get(ctx context.Context, settings, contentHash string) (extraction.Result, bool, error)
	Set(ctx context.Context, settings, contentHash string, res extraction.Result) error
}

// Options configures a Server. Extractor is required; Store and Cache are
// optional.
type Options struct {
	Port            int
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigin   string

	// CollaboratorTimeout bounds each call to the store or cache.
	CollaboratorTimeout time.Duration

	Logger    *zap.Logger
	Extractor *extraction.Extractor
	Store     Store
	Cache     ResultCache

	// RateLimit configures the limiter. Nil means ratelimit.DefaultConfig.
	RateLimit *ratelimit.Config
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	handler         http.Handler
	log             *zap.Logger
	extractor       *extraction.Extractor
	store           Store
	cache           ResultCache
	rateLimiter     *ratelimit.Limiter
	maxUpload       int64
	allowedOrigin   string
	shutdownTimeout time.Duration
	callTimeout     time.Duration
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Extractor == nil {
		return nil, errors.New("server requires an extractor")
	}

	s := &Server{
		log:             logger.WithFields(opts.Logger),
		extractor:       opts.Extractor,
		store:           opts.Store,
		cache:           opts.Cache,
		maxUpload:       opts.MaxUploadBytes,
		allowedOrigin:   opts.AllowedOrigin,
		shutdownTimeout: opts.ShutdownTimeout,
		callTimeout:     opts.CollaboratorTimeout,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUploadBytes
	}
	if s.allowedOrigin == "" {
		s.allowedOrigin = "*"
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 30 * time.Second
	}
	if s.callTimeout <= 0 {
		s.callTimeout = 5 * time.Second
	}

	s.rateLimiter = ratelimit.NewLimiter(opts.RateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /extract-skills", s.handleExtractSkills)
	mux.HandleFunc("POST /extract-resume", s.handleExtractResume)
	mux.HandleFunc("GET /skills/taxonomy", s.handleTaxonomy)
	mux.HandleFunc("POST /skills/normalize", s.handleNormalizeSkills)
	mux.HandleFunc("GET /extractions", s.handleListExtractions)
	mux.HandleFunc("GET /extractions/{id}", s.handleGetExtraction)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Port),
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs each request and tags it with a request ID.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := append(logger.RequestFields(r.Method, r.URL.Path, requestID),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
		if rec.status >= http.StatusInternalServerError {
			s.log.Error("request failed", fields...)
			return
		}
		s.log.Info("request completed", fields...)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and writes it. Internal errors are logged
// and their detail withheld from the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request error", zap.Error(err))
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID uses the IP address from RemoteAddr.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
