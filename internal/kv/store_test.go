package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// storeConformance exercises the Store contract shared by every backend
func storeConformance(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing key: got %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "a", "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "first" {
		t.Errorf("Get returned %q, want %q", got, "first")
	}

	// Set overwrites wholesale
	if err := s.Set(ctx, "a", "second"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	got, err = s.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	if got != "second" {
		t.Errorf("Get after overwrite returned %q, want %q", got, "second")
	}

	if err := s.Set(ctx, "b", "other"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Multi-key delete, including a key that doesn't exist
	if err := s.Delete(ctx, "a", "b", "never-there"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}

	if !s.Ping(ctx) {
		t.Error("Ping returned false for a live store")
	}
}

func TestMemoryStore(t *testing.T) {
	storeConformance(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv_test.db")
	s := NewSQLiteStore(path)
	defer s.Close()

	// Operations connect lazily, no explicit Connect needed
	storeConformance(t, s)
}

func TestSQLiteStoreReconnect(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv_reconnect.db")

	s := NewSQLiteStore(path)
	if err := s.Set(ctx, "persisted", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// A fresh store over the same file sees the data
	s2 := NewSQLiteStore(path)
	defer s2.Close()

	got, err := s2.Get(ctx, "persisted")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if got != "value" {
		t.Errorf("Get after reopen returned %q, want %q", got, "value")
	}
}

func TestDeleteNoKeys(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background()); err != nil {
		t.Errorf("Delete with no keys: %v", err)
	}
}
