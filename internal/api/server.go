package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/sorted-search-api/internal/kv"
	"github.com/MJE43/sorted-search-api/internal/search"
	"github.com/MJE43/sorted-search-api/internal/stats"
)

// Server handles HTTP requests
type Server struct {
	manager      *search.Manager
	store        kv.Store
	tracker      *stats.Tracker
	errorHandler *ErrorHandler
	logger       *log.Logger
	audit        *auditLogger
	startTime    time.Time
}

// NewServer creates a new API server
func NewServer(manager *search.Manager, store kv.Store, tracker *stats.Tracker) *Server {
	logger := log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile)
	audit := newAuditLogger()
	errorHandler := NewErrorHandler(logger, audit)

	server := &Server{
		manager:      manager,
		store:        store,
		tracker:      tracker,
		errorHandler: errorHandler,
		logger:       logger,
		audit:        audit,
		startTime:    time.Now(),
	}

	audit.Event("", "system_startup", "success", map[string]interface{}{
		"store_enabled":   server.store != nil,
		"manager_enabled": server.manager != nil,
		"service_version": ServiceVersion,
	})

	return server
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.errorHandler.RecoveryHandler) // Use our custom recovery handler
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.CORSMiddleware)

	// Health and monitoring endpoints
	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/metrics", s.handleMetrics)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/array", s.handleArray)
		r.Post("/reset", s.handleReset)
		r.Get("/stats", s.handleStats)
	})

	// Legacy routes (without /api/v1 prefix for backward compatibility)
	r.Post("/search", s.handleSearch)
	r.Get("/array", s.handleArray)
	r.Post("/reset", s.handleReset)
	r.Get("/stats", s.handleStats)

	return r
}

// CORSMiddleware applies the permissive CORS policy the public API carries
func (s *Server) CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Service-Version", ServiceVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// If encoding fails, try to write a simple error response
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// auditLogger records operational events as structured log lines
type auditLogger struct {
	logger *log.Logger
}

func newAuditLogger() *auditLogger {
	return &auditLogger{
		logger: log.New(os.Stdout, "[AUDIT] ", log.LstdFlags),
	}
}

// Event logs a single audit event with key=value fields
func (a *auditLogger) Event(requestID, action, outcome string, fields map[string]interface{}) {
	a.logger.Printf(
		"audit_event request_id=%s action=%s outcome=%s fields=%+v",
		requestID, action, outcome, fields,
	)
}
