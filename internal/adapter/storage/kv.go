package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gokastorage "github.com/lovoo/goka/storage"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/syndtr/goleveldb/leveldb"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

var _ port.KeyValueStore = (*KVStore)(nil)

// A KVStore is a key-value store on top of goka local storage.
//
// Goka memory storage is a bare map, so every access is serialized.
type KVStore struct {
	opPrefix string
	mu       sync.RWMutex
	st       gokastorage.Storage
}

// NewMemoryKV returns an in-memory store, its content is lost on exit.
func NewMemoryKV() *KVStore {
	return &KVStore{opPrefix: "MemoryKV", st: gokastorage.NewMemory()}
}

// OpenLevelDBKV opens or creates a leveldb database at path.
//
// Opening is retried while another process holds the database lock.
func OpenLevelDBKV(ctx context.Context, path string) (*KVStore, error) {
	const op = "OpenLevelDBKV"
	log := slog.With("op", op, "path", path)

	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LinearBackoff(200 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, ldbstorage.ErrLocked)
		},
	}

	db, err := retry.DoWithResult(ctx, retryCfg, func() (*leveldb.DB, error) {
		return leveldb.OpenFile(path, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := gokastorage.New(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("leveldb is opened")
	return &KVStore{opPrefix: "LevelDBKV", st: st}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	op := s.opPrefix + ".Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	v, err := s.st.Get(key)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	op := s.opPrefix + ".Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	err := s.st.Set(key, value)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	op := s.opPrefix + ".Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	err := s.st.Delete(key)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *KVStore) Close() {
	op := s.opPrefix + ".Close"
	log := slog.With("op", op)

	log.Info("closing key-value store...")
	if err := s.st.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("key-value store is closed")
}
