package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/sorted-search-api/internal/kv"
	"github.com/MJE43/sorted-search-api/internal/search"
)

// writeJSONError writes JSON error response
func writeJSONError(w http.ResponseWriter, data interface{}) error {
	return json.NewEncoder(w).Encode(data)
}

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]interface{}
	requestID string
	cause     error
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// WithCause adds the underlying cause error
func (eb *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	eb.cause = err
	if err != nil {
		eb.context["cause"] = err.Error()
	}
	return eb
}

// Build creates the final ServiceError
func (eb *ErrorBuilder) Build() ServiceError {
	return ServiceError{
		Type:      eb.errType,
		Message:   eb.message,
		Context:   eb.context,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *log.Logger
	audit  *auditLogger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *log.Logger, audit *auditLogger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		audit:  audit,
	}
}

// HandleError classifies err and writes the appropriate HTTP response.
// Validation failures from the search core map to 400, store connection
// failures to 503, everything else to defaultStatus.
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error, defaultStatus int) {
	requestID := middleware.GetReqID(r.Context())

	// Check if it's already a ServiceError
	if svcErr, ok := err.(ServiceError); ok {
		eh.logError(r, svcErr, defaultStatus)
		eh.writeErrorResponse(w, defaultStatus, svcErr)
		return
	}

	var vErr *search.ValidationError
	if errors.As(err, &vErr) {
		svcErr := NewError(ErrTypeValidation, vErr.Message).
			WithRequestID(requestID).
			WithContext("field", vErr.Field).
			WithContext("path", r.URL.Path).
			WithContext("method", r.Method).
			Build()
		eh.logError(r, svcErr, http.StatusBadRequest)
		eh.writeErrorResponse(w, http.StatusBadRequest, svcErr)
		return
	}

	var cErr *kv.ConnError
	if errors.As(err, &cErr) {
		svcErr := NewError(ErrTypeStoreUnavailable, "Key-value store unreachable").
			WithRequestID(requestID).
			WithContext("backend", cErr.Backend).
			WithContext("path", r.URL.Path).
			WithCause(cErr.Err).
			Build()
		eh.logError(r, svcErr, http.StatusServiceUnavailable)
		eh.writeErrorResponse(w, http.StatusServiceUnavailable, svcErr)
		return
	}

	// Convert regular error to ServiceError
	svcErr := NewError(ErrTypeInternal, err.Error()).
		WithRequestID(requestID).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.logError(r, svcErr, defaultStatus)
	eh.writeErrorResponse(w, defaultStatus, svcErr)
}

// HandleValidationError handles request-level validation failures
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	requestID := middleware.GetReqID(r.Context())

	svcErr := NewError(ErrTypeInvalidParams, fmt.Sprintf("Validation failed: %s", message)).
		WithRequestID(requestID).
		WithContext("field", field).
		WithContext("path", r.URL.Path).
		WithContext("method", r.Method).
		Build()

	eh.audit.Event(requestID, "validation_failure", "rejected", map[string]interface{}{
		"field": field,
		"path":  r.URL.Path,
	})

	eh.logError(r, svcErr, http.StatusBadRequest)
	eh.writeErrorResponse(w, http.StatusBadRequest, svcErr)
}

// logError logs the error with appropriate level and context
func (eh *ErrorHandler) logError(r *http.Request, svcErr ServiceError, status int) {
	category := GetErrorCategory(svcErr.Type)

	// Log with different levels based on error category
	logLevel := "ERROR"
	if category == CategoryValidation {
		logLevel = "WARN"
	} else if status >= 500 {
		logLevel = "ERROR"
	}

	eh.logger.Printf(
		"error_occurred level=%s type=%s category=%s status=%d request_id=%s path=%s message=%q context=%+v",
		logLevel, svcErr.Type, category, status, svcErr.RequestID, r.URL.Path, svcErr.Message, svcErr.Context,
	)
}

// writeErrorResponse writes the error response as JSON
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, svcErr ServiceError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Service-Version", ServiceVersion)
	w.Header().Set("X-Error-Type", svcErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(svcErr.Type)))
	w.WriteHeader(status)

	// Write JSON response
	if err := writeJSONError(w, svcErr); err != nil {
		// Fallback to plain text if JSON encoding fails
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// RecoveryHandler provides panic recovery with structured error logging
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				requestID := middleware.GetReqID(r.Context())

				// Log panic with full context
				eh.logger.Printf(
					"panic_recovered request_id=%s path=%s method=%s panic=%v",
					requestID, r.URL.Path, r.Method, rvr,
				)

				// Create structured error response
				svcErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					WithContext("panic", fmt.Sprintf("%v", rvr)).
					WithContext("path", r.URL.Path).
					WithContext("method", r.Method).
					Build()

				eh.writeErrorResponse(w, http.StatusInternalServerError, svcErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
