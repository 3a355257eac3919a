// Package server provides the HTTP REST API for the resume matcher.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

// Config holds server configuration.
type Config struct {
	Port         int
	APIKey       string
	StageTimeout time.Duration
	ModelConfig  *llm.Config
}

// Server is the HTTP server wrapping the analysis pipeline.
type Server struct {
	httpServer  *http.Server
	client      llm.Client
	runner      *pipeline.Runner
	rateLimiter *ratelimit.Limiter
}

// New creates a server instance and its provider client.
func New(cfg Config) (*Server, error) {
	client, err := llm.NewClient(context.Background(), cfg.ModelConfig, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	s := &Server{
		client:      client,
		rateLimiter: ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		runner: pipeline.New(pipeline.Options{
			Client:       client,
			StageTimeout: cfg.StageTimeout,
		}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // long timeout for pipeline runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if err := s.client.Close(); err != nil {
		log.Printf("Warning: failed to close provider client: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds permissive CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// withRateLimit applies per-client rate limiting to analysis requests.
// Health checks are never limited.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		allowed, retryAfter := s.rateLimiter.Allow(clientID(r))
		if !allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", retryAfter.Seconds()))
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID identifies a client for rate limiting, preferring the proxy
// header over the raw remote address.
func clientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
