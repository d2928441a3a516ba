package api

import (
	"github.com/MJE43/sorted-search-api/internal/search"
	"github.com/MJE43/sorted-search-api/internal/stats"
)

// ServiceError represents a structured error response with context
type ServiceError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e ServiceError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeInvalidParams = "invalid_params"
	ErrTypeValidation    = "validation_error"

	// Storage errors
	ErrTypeStoreUnavailable = "store_unavailable"

	// System errors
	ErrTypeTimeout            = "timeout"
	ErrTypeInternal           = "internal_error"
	ErrTypeServiceUnavailable = "service_unavailable"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryStorage    ErrorCategory = "storage"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidParams, ErrTypeValidation:
		return CategoryValidation
	case ErrTypeStoreUnavailable:
		return CategoryStorage
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// VersionInfo contains service version information
type VersionInfo struct {
	ServiceVersion string `json:"service_version"`
	GitCommit      string `json:"git_commit,omitempty"`
	BuildTime      string `json:"build_time,omitempty"`
}

// Value bounds enforced at the API edge. The search core itself accepts any
// integers; these mirror the public contract.
const (
	SearchValueMin = 1
	SearchValueMax = 1000

	ResetSizeMin = 10
	ResetSizeMax = 1000
	ResetMinLow  = 0
	ResetMinHigh = 10000
	ResetMaxLow  = 1
	ResetMaxHigh = 10000
)

// SearchRequest represents a search request
type SearchRequest struct {
	Value int `json:"value"`
}

// SearchResponse represents a search result. ArrayMin and ArrayMax are null
// when the array was empty at search time.
type SearchResponse struct {
	Found          bool    `json:"found"`
	Index          int     `json:"index"`
	Value          int     `json:"value"`
	ArraySize      int     `json:"array_size"`
	ArrayMin       *int    `json:"array_min"`
	ArrayMax       *int    `json:"array_max"`
	SearchTimeMs   float64 `json:"search_time_ms"`
	ServiceVersion string  `json:"service_version"`
}

// ArrayResponse represents the current array and its metadata
type ArrayResponse struct {
	Array          []int            `json:"array"`
	Size           int              `json:"size"`
	MinValue       *int             `json:"min_value"`
	MaxValue       *int             `json:"max_value"`
	IsSorted       bool             `json:"is_sorted"`
	Source         string           `json:"source"`
	Metadata       *search.Metadata `json:"metadata,omitempty"`
	ServiceVersion string           `json:"service_version"`
}

// ResetRequest represents a reset request. Absent fields keep the current
// defaults; zero values are explicit overrides.
type ResetRequest struct {
	NewSize  *int   `json:"new_size,omitempty"`
	MinValue *int   `json:"min_value,omitempty"`
	MaxValue *int   `json:"max_value,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
}

// ResetResponse confirms a reset and echoes the new metadata
type ResetResponse struct {
	Message        string           `json:"message"`
	Size           int              `json:"size"`
	Metadata       *search.Metadata `json:"metadata"`
	ServiceVersion string           `json:"service_version"`
}

// StatsResponse represents the statistics snapshot
type StatsResponse struct {
	stats.Snapshot
	ServiceVersion string `json:"service_version"`
}
