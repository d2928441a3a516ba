// Command server runs the sorted-search HTTP API.
//
// Configuration (environment variables):
//   - LISTEN_ADDR: HTTP listen address (default ":8080")
//   - STORE_BACKEND: "redis", "sqlite" or "memory" (default "redis")
//   - REDIS_ADDR: Redis address (default "localhost:6379")
//   - SQLITE_PATH: SQLite database path (default "search.db")
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MJE43/sorted-search-api/internal/api"
	"github.com/MJE43/sorted-search-api/internal/kv"
	"github.com/MJE43/sorted-search-api/internal/search"
	"github.com/MJE43/sorted-search-api/internal/stats"
)

type config struct {
	listenAddr   string
	storeBackend string
	redisAddr    string
	sqlitePath   string
}

func loadConfig() config {
	return config{
		listenAddr:   envOr("LISTEN_ADDR", ":8080"),
		storeBackend: envOr("STORE_BACKEND", "redis"),
		redisAddr:    envOr("REDIS_ADDR", "localhost:6379"),
		sqlitePath:   envOr("SQLITE_PATH", "search.db"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newStore(cfg config) (kv.Store, error) {
	switch cfg.storeBackend {
	case "redis":
		return kv.NewRedisStore(cfg.redisAddr), nil
	case "sqlite":
		return kv.NewSQLiteStore(cfg.sqlitePath), nil
	case "memory":
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.storeBackend)
	}
}

func main() {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)
	cfg := loadConfig()

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatalf("configuration error: %v", err)
	}
	defer store.Close()

	manager := search.NewManager(search.NewArrayStore(store))
	tracker := stats.NewTracker()
	server := api.NewServer(manager, store, tracker)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the array at startup. A store outage is not fatal: the manager
	// initializes lazily on the first request once the store recovers.
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if arr, err := manager.Initialize(initCtx); err != nil {
		logger.Printf("array initialization deferred: %v", err)
	} else {
		logger.Printf("array ready backend=%s size=%d", cfg.storeBackend, len(arr))
	}
	cancel()

	httpServer := &http.Server{
		Addr:    cfg.listenAddr,
		Handler: server.Routes(),
	}

	go func() {
		logger.Printf("listening on %s", cfg.listenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
}
