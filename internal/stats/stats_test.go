package stats

import (
	"sync"
	"testing"
	"time"
)

func TestRecordCounters(t *testing.T) {
	tr := NewTracker()

	tr.Record(42, true, 0.5)
	tr.Record(42, false, 1.5)
	tr.Record(7, true, 1.0)

	snap := tr.Snapshot()

	if snap.TotalSearches != 3 {
		t.Errorf("TotalSearches = %d, want 3", snap.TotalSearches)
	}
	if snap.SuccessfulSearches != 2 {
		t.Errorf("SuccessfulSearches = %d, want 2", snap.SuccessfulSearches)
	}
	if snap.FailedSearches != 1 {
		t.Errorf("FailedSearches = %d, want 1", snap.FailedSearches)
	}
	if snap.DistinctValues != 2 {
		t.Errorf("DistinctValues = %d, want 2", snap.DistinctValues)
	}
	if snap.AverageSearchTimeMs != 1.0 {
		t.Errorf("AverageSearchTimeMs = %f, want 1.0", snap.AverageSearchTimeMs)
	}
	if snap.SearchesToday != 3 {
		t.Errorf("SearchesToday = %d, want 3", snap.SearchesToday)
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := NewTracker().Snapshot()

	if snap.AverageSearchTimeMs != 0 {
		t.Errorf("AverageSearchTimeMs = %f, want 0", snap.AverageSearchTimeMs)
	}
	if snap.MostSearchedValue != nil {
		t.Errorf("MostSearchedValue = %v, want nil", snap.MostSearchedValue)
	}
	if snap.SearchesToday != 0 {
		t.Errorf("SearchesToday = %d, want 0", snap.SearchesToday)
	}
}

func TestWindowEviction(t *testing.T) {
	tr := NewTracker()

	// 500 old samples at 10ms, then 1000 recent samples at 2ms: the window
	// must hold only the most recent 1000
	for i := 0; i < 500; i++ {
		tr.Record(1, true, 10)
	}
	for i := 0; i < 1000; i++ {
		tr.Record(1, true, 2)
	}

	snap := tr.Snapshot()

	if snap.WindowSamples != WindowSize {
		t.Errorf("WindowSamples = %d, want %d", snap.WindowSamples, WindowSize)
	}
	if snap.AverageSearchTimeMs != 2 {
		t.Errorf("AverageSearchTimeMs = %f, want 2 (only recent samples)", snap.AverageSearchTimeMs)
	}
	if snap.TotalSearches != 1500 {
		t.Errorf("TotalSearches = %d, want 1500 (counters are not windowed)", snap.TotalSearches)
	}
}

func TestWindowStrictFIFO(t *testing.T) {
	tr := NewTracker()

	for i := 0; i < WindowSize; i++ {
		tr.Record(1, true, 0)
	}
	// One more evicts exactly the oldest sample
	tr.Record(1, true, float64(WindowSize))

	snap := tr.Snapshot()
	if snap.WindowSamples != WindowSize {
		t.Fatalf("WindowSamples = %d, want %d", snap.WindowSamples, WindowSize)
	}
	if snap.AverageSearchTimeMs != 1 {
		t.Errorf("AverageSearchTimeMs = %f, want 1", snap.AverageSearchTimeMs)
	}
}

func TestMostSearchedValue(t *testing.T) {
	tr := NewTracker()

	tr.Record(5, true, 0)
	tr.Record(9, false, 0)
	tr.Record(9, false, 0)
	tr.Record(2, true, 0)

	snap := tr.Snapshot()
	if snap.MostSearchedValue == nil || *snap.MostSearchedValue != 9 {
		t.Errorf("MostSearchedValue = %v, want 9", snap.MostSearchedValue)
	}
}

func TestMostSearchedTieBreak(t *testing.T) {
	tr := NewTracker()

	// Equal counts resolve to the lowest value
	tr.Record(8, true, 0)
	tr.Record(3, true, 0)
	tr.Record(8, true, 0)
	tr.Record(3, true, 0)

	snap := tr.Snapshot()
	if snap.MostSearchedValue == nil || *snap.MostSearchedValue != 3 {
		t.Errorf("MostSearchedValue = %v, want 3 (lowest value wins ties)", snap.MostSearchedValue)
	}
}

func TestSearchesTodayUsesLocalDay(t *testing.T) {
	tr := NewTracker()

	// Pin the clock to yesterday, record, then move to today
	yesterday := time.Now().AddDate(0, 0, -1)
	tr.now = func() time.Time { return yesterday }
	tr.Record(1, true, 0)

	tr.now = time.Now
	tr.Record(1, true, 0)

	snap := tr.Snapshot()
	if snap.SearchesToday != 1 {
		t.Errorf("SearchesToday = %d, want 1", snap.SearchesToday)
	}
	if snap.TotalSearches != 2 {
		t.Errorf("TotalSearches = %d, want 2", snap.TotalSearches)
	}
}

func TestConcurrentRecording(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	const goroutines = 8
	const perGoroutine = 200

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				tr.Record(g, i%2 == 0, 1)
				tr.Snapshot()
			}
		}(g)
	}
	wg.Wait()

	snap := tr.Snapshot()
	if snap.TotalSearches != goroutines*perGoroutine {
		t.Errorf("TotalSearches = %d, want %d", snap.TotalSearches, goroutines*perGoroutine)
	}
	if snap.SuccessfulSearches+snap.FailedSearches != snap.TotalSearches {
		t.Error("success + failed != total")
	}
}
