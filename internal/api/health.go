package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a comprehensive health check response
type HealthCheckResponse struct {
	Status         HealthStatus           `json:"status"`
	Timestamp      string                 `json:"timestamp"`
	ServiceVersion string                 `json:"service_version"`
	GitCommit      string                 `json:"git_commit,omitempty"`
	BuildTime      string                 `json:"build_time,omitempty"`
	Uptime         string                 `json:"uptime"`
	Checks         map[string]HealthCheck `json:"checks"`
	System         SystemInfo             `json:"system"`
	RequestID      string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked string       `json:"last_checked"`
	Duration    string       `json:"duration,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	MemoryAlloc   uint64 `json:"memory_alloc_bytes"`
	MemoryTotal   uint64 `json:"memory_total_bytes"`
	MemorySys     uint64 `json:"memory_sys_bytes"`
	GCCycles      uint32 `json:"gc_cycles"`
}

// MetricsResponse represents basic performance metrics
type MetricsResponse struct {
	Timestamp      string               `json:"timestamp"`
	ServiceVersion string               `json:"service_version"`
	Uptime         string               `json:"uptime"`
	System         SystemInfo           `json:"system"`
	Operations     map[string]OpMetrics `json:"operations"`
	RequestID      string               `json:"request_id,omitempty"`
}

// OpMetrics represents operation-specific metrics
type OpMetrics struct {
	TotalRequests   int64   `json:"total_requests"`
	SuccessRequests int64   `json:"success_requests"`
	ErrorRequests   int64   `json:"error_requests"`
	AvgDurationMs   float64 `json:"avg_duration_ms"`
}

// handleHealthCheck provides comprehensive health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())
	start := time.Now()

	// Perform health checks
	checks := make(map[string]HealthCheck)
	overallStatus := HealthStatusHealthy

	// Check key-value store connectivity
	storeCheck := s.checkStoreHealth(r)
	checks["store"] = storeCheck
	if storeCheck.Status == HealthStatusUnhealthy {
		overallStatus = HealthStatusUnhealthy
	}

	// Check array state
	arrayCheck := s.checkArrayHealth(r)
	checks["array"] = arrayCheck
	if arrayCheck.Status == HealthStatusDegraded && overallStatus == HealthStatusHealthy {
		overallStatus = HealthStatusDegraded
	}

	// Get system information
	systemInfo := s.getSystemInfo()

	// Create response
	response := HealthCheckResponse{
		Status:         overallStatus,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		ServiceVersion: ServiceVersion,
		GitCommit:      GitCommit,
		BuildTime:      BuildTime,
		Uptime:         time.Since(s.startTime).String(),
		Checks:         checks,
		System:         systemInfo,
		RequestID:      requestID,
	}

	// Determine HTTP status code based on health
	statusCode := http.StatusOK
	if overallStatus == HealthStatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	// Log health check
	s.audit.Event(requestID, "health_check", string(overallStatus), map[string]interface{}{
		"duration":    time.Since(start).String(),
		"checks":      len(checks),
		"status_code": statusCode,
	})

	s.writeJSON(w, statusCode, response)
}

// handleMetrics provides basic performance metrics endpoint
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	// Search metrics come from the statistics tracker
	snap := s.tracker.Snapshot()
	operations := map[string]OpMetrics{
		"search": {
			TotalRequests:   snap.TotalSearches,
			SuccessRequests: snap.SuccessfulSearches,
			ErrorRequests:   snap.FailedSearches,
			AvgDurationMs:   snap.AverageSearchTimeMs,
		},
	}

	response := MetricsResponse{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		ServiceVersion: ServiceVersion,
		Uptime:         time.Since(s.startTime).String(),
		System:         s.getSystemInfo(),
		Operations:     operations,
		RequestID:      requestID,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleReadiness provides readiness probe endpoint
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	// Simple readiness check - ensure critical components are available
	ready := true
	message := "Ready"

	if s.manager == nil {
		ready = false
		message = "Array manager not initialized"
	}
	if s.store == nil {
		ready = false
		message = "Store not initialized"
	} else if !s.store.Ping(r.Context()) {
		ready = false
		message = "Store not reachable"
	}

	response := map[string]interface{}{
		"ready":           ready,
		"message":         message,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"service_version": ServiceVersion,
		"request_id":      requestID,
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	// Log readiness check
	outcome := "ready"
	if !ready {
		outcome = "not_ready"
	}
	s.audit.Event(requestID, "readiness_check", outcome, map[string]interface{}{
		"message": message,
	})

	s.writeJSON(w, statusCode, response)
}

// handleLiveness provides liveness probe endpoint
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	// Simple liveness check - just respond if the server is running
	response := map[string]interface{}{
		"alive":           true,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"service_version": ServiceVersion,
		"uptime":          time.Since(s.startTime).String(),
		"request_id":      requestID,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// checkStoreHealth checks key-value store connectivity
func (s *Server) checkStoreHealth(r *http.Request) HealthCheck {
	start := time.Now()

	status := HealthStatusHealthy
	message := "Store connection healthy"

	if s.store == nil {
		status = HealthStatusUnhealthy
		message = "Store not initialized"
	} else if !s.store.Ping(r.Context()) {
		status = HealthStatusUnhealthy
		message = "Store ping failed"
	}

	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// checkArrayHealth checks whether an array is loadable
func (s *Server) checkArrayHealth(r *http.Request) HealthCheck {
	start := time.Now()

	status := HealthStatusHealthy
	message := "Array available"

	if s.manager == nil {
		status = HealthStatusDegraded
		message = "Array manager not initialized"
	} else if _, err := s.manager.GetArray(r.Context()); err != nil {
		// Degraded rather than unhealthy: the array regenerates lazily once
		// the store recovers
		status = HealthStatusDegraded
		message = "Array not loadable: " + err.Error()
	}

	return HealthCheck{
		Status:      status,
		Message:     message,
		LastChecked: time.Now().UTC().Format(time.RFC3339),
		Duration:    time.Since(start).String(),
	}
}

// getSystemInfo collects system information
func (s *Server) getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		MemoryAlloc:   m.Alloc,
		MemoryTotal:   m.TotalAlloc,
		MemorySys:     m.Sys,
		GCCycles:      m.NumGC,
	}
}
