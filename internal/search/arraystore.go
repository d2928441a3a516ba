package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MJE43/sorted-search-api/internal/kv"
)

// Fixed storage keys. The array payload and its metadata live under separate
// keys and are always written together.
const (
	arrayKey    = "binary_search:array"
	metadataKey = "binary_search:metadata"
)

// ArrayStore persists the array and its metadata as JSON strings in a
// key-value store.
type ArrayStore struct {
	store kv.Store
}

// NewArrayStore creates an array store over the given backend
func NewArrayStore(store kv.Store) *ArrayStore {
	return &ArrayStore{store: store}
}

// SaveArray overwrites the stored array
func (as *ArrayStore) SaveArray(ctx context.Context, arr []int) error {
	data, err := json.Marshal(arr)
	if err != nil {
		return fmt.Errorf("encode array: %w", err)
	}
	return as.store.Set(ctx, arrayKey, string(data))
}

// LoadArray returns the stored array, or kv.ErrNotFound when absent
func (as *ArrayStore) LoadArray(ctx context.Context) ([]int, error) {
	data, err := as.store.Get(ctx, arrayKey)
	if err != nil {
		return nil, err
	}

	var arr []int
	if err := json.Unmarshal([]byte(data), &arr); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}
	return arr, nil
}

// SaveMetadata overwrites the stored metadata
func (as *ArrayStore) SaveMetadata(ctx context.Context, meta *Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return as.store.Set(ctx, metadataKey, string(data))
}

// LoadMetadata returns the stored metadata, or kv.ErrNotFound when absent
func (as *ArrayStore) LoadMetadata(ctx context.Context) (*Metadata, error) {
	data, err := as.store.Get(ctx, metadataKey)
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

// Clear deletes the array and its metadata
func (as *ArrayStore) Clear(ctx context.Context) error {
	return as.store.Delete(ctx, arrayKey, metadataKey)
}
