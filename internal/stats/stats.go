// Package stats aggregates process-local search statistics. Everything here
// is in-memory, best-effort, and discarded on restart.
package stats

import (
	"sync"
	"time"
)

// WindowSize bounds the FIFO timing window used for averaging
const WindowSize = 1000

// Snapshot is a consistent copy of the aggregated statistics.
// MostSearchedValue is nil until at least one search is recorded.
type Snapshot struct {
	TotalSearches       int64   `json:"total_searches"`
	SuccessfulSearches  int64   `json:"successful_searches"`
	FailedSearches      int64   `json:"failed_searches"`
	AverageSearchTimeMs float64 `json:"average_search_time_ms"`
	MostSearchedValue   *int    `json:"most_searched_value"`
	SearchesToday       int64   `json:"searches_today"`
	DistinctValues      int     `json:"distinct_values"`
	WindowSamples       int     `json:"window_samples"`
}

// Tracker accumulates search statistics. All mutation and snapshotting runs
// under one mutex; Record cannot fail, so it never takes a search down with
// it.
type Tracker struct {
	mu          sync.Mutex
	total       int64
	successful  int64
	failed      int64
	window      []float64
	valueCounts map[int]int64
	dailyCounts map[string]int64
	now         func() time.Time
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		window:      make([]float64, 0, WindowSize),
		valueCounts: make(map[int]int64),
		dailyCounts: make(map[string]int64),
		now:         time.Now,
	}
}

// Record registers one completed search. The timing window evicts its oldest
// sample once full (strict FIFO); daily counts key on the local calendar day.
func (t *Tracker) Record(value int, found bool, elapsedMs float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	if found {
		t.successful++
	} else {
		t.failed++
	}

	t.window = append(t.window, elapsedMs)
	if len(t.window) > WindowSize {
		copy(t.window, t.window[1:])
		t.window = t.window[:WindowSize]
	}

	t.valueCounts[value]++

	today := t.now().Format(time.DateOnly)
	t.dailyCounts[today]++
}

// Snapshot computes the current statistics. The window average is 0 when no
// samples exist; most-searched ties resolve to the lowest value.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		TotalSearches:      t.total,
		SuccessfulSearches: t.successful,
		FailedSearches:     t.failed,
		DistinctValues:     len(t.valueCounts),
		WindowSamples:      len(t.window),
	}

	if len(t.window) > 0 {
		sum := 0.0
		for _, ms := range t.window {
			sum += ms
		}
		snap.AverageSearchTimeMs = sum / float64(len(t.window))
	}

	if len(t.valueCounts) > 0 {
		best := 0
		var bestCount int64 = -1
		for v, c := range t.valueCounts {
			if c > bestCount || (c == bestCount && v < best) {
				best = v
				bestCount = c
			}
		}
		snap.MostSearchedValue = &best
	}

	today := t.now().Format(time.DateOnly)
	snap.SearchesToday = t.dailyCounts[today]

	return snap
}
