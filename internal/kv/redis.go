package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store against a remote Redis instance
type RedisStore struct {
	addr string

	mu     sync.Mutex
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store. No connection is made until
// Connect or the first operation.
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{addr: addr}
}

// Connect establishes and verifies the connection
func (s *RedisStore) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.clientLocked(ctx)
	return err
}

// clientLocked returns the connected client, dialing on first use.
// Caller must hold s.mu.
func (s *RedisStore) clientLocked(ctx context.Context) (*redis.Client, error) {
	if s.client != nil {
		return s.client, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         s.addr,
		DialTimeout:  OpTimeout,
		ReadTimeout:  OpTimeout,
		WriteTimeout: OpTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, &ConnError{Backend: "redis", Addr: s.addr, Err: err}
	}

	s.client = client
	return s.client, nil
}

func (s *RedisStore) ensure(ctx context.Context) (*redis.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientLocked(ctx)
}

// Ping probes the connection, swallowing all errors into false
func (s *RedisStore) Ping(ctx context.Context) bool {
	client, err := s.ensure(ctx)
	if err != nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, OpTimeout)
	defer cancel()

	return client.Ping(pingCtx).Err() == nil
}

// Get retrieves a value by key
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	client, err := s.ensure(ctx)
	if err != nil {
		return "", err
	}

	val, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv: get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value, overwriting any existing value
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	client, err := s.ensure(ctx)
	if err != nil {
		return err
	}

	if err := client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	client, err := s.ensure(ctx)
	if err != nil {
		return err
	}

	if err := client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("kv: delete: %w", err)
	}
	return nil
}

// Close closes the connection if one was made
func (s *RedisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
