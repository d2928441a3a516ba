package search

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MJE43/sorted-search-api/internal/engine"
	"github.com/MJE43/sorted-search-api/internal/kv"
)

// Default generation parameters, overwritten by the most recent explicit
// reset values.
const (
	DefaultSize     = 100
	DefaultMinValue = 1
	DefaultMaxValue = 1000
	DefaultSeed     = 42
)

// settings is the manager's single owned defaults state
type settings struct {
	size     int
	minValue int
	maxValue int
	seed     int64
}

// Manager owns the lifecycle of the current array: lazy load-or-generate,
// deterministic regeneration, and persistence of array plus metadata as one
// unit. The mutex covers the defaults and every write of that unit, so a
// reset is never observed half-applied; searches operate on the slice
// snapshot a load returns and are unaffected by later resets.
type Manager struct {
	store *ArrayStore

	mu  sync.RWMutex
	def settings
}

// NewManager creates a manager with the standard defaults
func NewManager(store *ArrayStore) *Manager {
	return &Manager{
		store: store,
		def: settings{
			size:     DefaultSize,
			minValue: DefaultMinValue,
			maxValue: DefaultMaxValue,
			seed:     DefaultSeed,
		},
	}
}

// resolve merges explicit params over the given defaults and validates the
// bounds
func resolve(def settings, p Params) (settings, error) {
	out := def
	if p.Size != nil {
		out.size = *p.Size
	}
	if p.MinValue != nil {
		out.minValue = *p.MinValue
	}
	if p.MaxValue != nil {
		out.maxValue = *p.MaxValue
	}
	if p.Seed != nil {
		out.seed = *p.Seed
	}

	if out.minValue >= out.maxValue {
		return out, &ValidationError{
			Field:   "min_value",
			Message: "min_value must be less than max_value",
		}
	}
	return out, nil
}

// build generates the sorted array and its metadata for resolved settings
func build(s settings, source string) ([]int, *Metadata) {
	arr := engine.Ints(s.seed, s.size, s.minValue, s.maxValue)
	sort.Ints(arr)

	meta := &Metadata{
		GenerationID: uuid.New().String(),
		Size:         len(arr),
		MinValue:     s.minValue,
		MaxValue:     s.maxValue,
		Seed:         s.seed,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Source:       source,
	}
	return arr, meta
}

// Generate produces a sorted array from the given params without touching
// the stored defaults or the store. Nil params fall back to the current
// defaults.
func (m *Manager) Generate(p Params) ([]int, *Metadata, error) {
	m.mu.RLock()
	def := m.def
	m.mu.RUnlock()

	s, err := resolve(def, p)
	if err != nil {
		return nil, nil, err
	}

	arr, meta := build(s, SourceGenerated)
	return arr, meta, nil
}

// Initialize loads the array from the store, generating and persisting one
// with the current defaults when nothing is stored yet. Calling it with
// existing data returns the loaded array untouched.
func (m *Manager) Initialize(ctx context.Context) ([]int, error) {
	arr, err := m.store.LoadArray(ctx)
	if err == nil {
		return arr, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another initializer may have won the race while we waited
	arr, err = m.store.LoadArray(ctx)
	if err == nil {
		return arr, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return nil, err
	}

	s, err := resolve(m.def, Params{})
	if err != nil {
		return nil, err
	}

	arr, meta := build(s, SourceGenerated)
	if err := m.store.SaveArray(ctx, arr); err != nil {
		return nil, err
	}
	if err := m.store.SaveMetadata(ctx, meta); err != nil {
		return nil, err
	}
	return arr, nil
}

// GetArray returns the current array, initializing lazily when the store
// holds nothing
func (m *Manager) GetArray(ctx context.Context) ([]int, error) {
	arr, err := m.store.LoadArray(ctx)
	if errors.Is(err, kv.ErrNotFound) {
		return m.Initialize(ctx)
	}
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// Source returns the metadata's source tag. Missing metadata degrades
// gracefully: "unknown" when an array exists without metadata, "generated"
// when nothing is stored at all.
func (m *Manager) Source(ctx context.Context) (string, error) {
	meta, err := m.store.LoadMetadata(ctx)
	if err == nil {
		if meta.Source == "" {
			return SourceUnknown, nil
		}
		return meta.Source, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return "", err
	}

	if _, err := m.store.LoadArray(ctx); err == nil {
		return SourceUnknown, nil
	} else if !errors.Is(err, kv.ErrNotFound) {
		return "", err
	}
	return SourceGenerated, nil
}

// Metadata returns the stored metadata, or nil without error when absent
func (m *Manager) Metadata(ctx context.Context) (*Metadata, error) {
	meta, err := m.store.LoadMetadata(ctx)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// Reset regenerates the array. Explicitly supplied params become the new
// stored defaults; the regenerated array and metadata (source "regenerated")
// replace the stored unit wholesale. Defaults are only committed once the
// params validate and the store writes succeed.
func (m *Manager) Reset(ctx context.Context, p Params) ([]int, *Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := resolve(m.def, p)
	if err != nil {
		return nil, nil, err
	}

	arr, meta := build(s, SourceRegenerated)
	if err := m.store.SaveArray(ctx, arr); err != nil {
		return nil, nil, err
	}
	if err := m.store.SaveMetadata(ctx, meta); err != nil {
		return nil, nil, err
	}

	m.def = s
	return arr, meta, nil
}

// Clear removes the stored array and metadata, leaving defaults intact
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Clear(ctx)
}
