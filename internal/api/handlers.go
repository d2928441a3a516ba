package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/sorted-search-api/internal/search"
)

// handleSearch runs a binary search for the requested value
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON body")
		return
	}

	if req.Value < SearchValueMin || req.Value > SearchValueMax {
		s.errorHandler.HandleValidationError(w, r, "value",
			fmt.Sprintf("value must be between %d and %d", SearchValueMin, SearchValueMax))
		return
	}

	start := time.Now()

	arr, err := s.manager.GetArray(r.Context())
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	outcome := search.Search(arr, req.Value)
	elapsedMs := float64(time.Since(start)) / float64(time.Millisecond)

	// Statistics are best-effort and can never fail the search
	s.tracker.Record(outcome.Value, outcome.Found, elapsedMs)

	s.audit.Event(requestID, "search", outcomeLabel(outcome.Found), map[string]interface{}{
		"value":      outcome.Value,
		"index":      outcome.Index,
		"array_size": outcome.ArraySize,
	})

	s.writeJSON(w, http.StatusOK, SearchResponse{
		Found:          outcome.Found,
		Index:          outcome.Index,
		Value:          outcome.Value,
		ArraySize:      outcome.ArraySize,
		ArrayMin:       outcome.ArrayMin,
		ArrayMax:       outcome.ArrayMax,
		SearchTimeMs:   elapsedMs,
		ServiceVersion: ServiceVersion,
	})
}

// handleArray returns the current array and its source
func (s *Server) handleArray(w http.ResponseWriter, r *http.Request) {
	arr, err := s.manager.GetArray(r.Context())
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	source, err := s.manager.Source(r.Context())
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	meta, err := s.manager.Metadata(r.Context())
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	resp := ArrayResponse{
		Array:          arr,
		Size:           len(arr),
		IsSorted:       sort.IntsAreSorted(arr),
		Source:         source,
		Metadata:       meta,
		ServiceVersion: ServiceVersion,
	}
	if len(arr) > 0 {
		minV := arr[0]
		maxV := arr[len(arr)-1]
		resp.MinValue = &minV
		resp.MaxValue = &maxV
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleReset regenerates the array with the requested parameters
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	var req ResetRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON body")
			return
		}
	}

	if req.NewSize != nil && (*req.NewSize < ResetSizeMin || *req.NewSize > ResetSizeMax) {
		s.errorHandler.HandleValidationError(w, r, "new_size",
			fmt.Sprintf("new_size must be between %d and %d", ResetSizeMin, ResetSizeMax))
		return
	}
	if req.MinValue != nil && (*req.MinValue < ResetMinLow || *req.MinValue > ResetMinHigh) {
		s.errorHandler.HandleValidationError(w, r, "min_value",
			fmt.Sprintf("min_value must be between %d and %d", ResetMinLow, ResetMinHigh))
		return
	}
	if req.MaxValue != nil && (*req.MaxValue < ResetMaxLow || *req.MaxValue > ResetMaxHigh) {
		s.errorHandler.HandleValidationError(w, r, "max_value",
			fmt.Sprintf("max_value must be between %d and %d", ResetMaxLow, ResetMaxHigh))
		return
	}

	arr, meta, err := s.manager.Reset(r.Context(), search.Params{
		Size:     req.NewSize,
		MinValue: req.MinValue,
		MaxValue: req.MaxValue,
		Seed:     req.Seed,
	})
	if err != nil {
		s.errorHandler.HandleError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.audit.Event(requestID, "array_reset", "success", map[string]interface{}{
		"size":          len(arr),
		"generation_id": meta.GenerationID,
		"seed":          meta.Seed,
	})

	s.writeJSON(w, http.StatusOK, ResetResponse{
		Message:        "Array reset successfully",
		Size:           len(arr),
		Metadata:       meta,
		ServiceVersion: ServiceVersion,
	})
}

// handleStats returns the statistics snapshot
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, StatsResponse{
		Snapshot:       s.tracker.Snapshot(),
		ServiceVersion: ServiceVersion,
	})
}

func outcomeLabel(found bool) string {
	if found {
		return "found"
	}
	return "not_found"
}
