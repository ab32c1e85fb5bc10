package classify

import (
	"context"
	"sync"
	"time"

	"github.com/finsight/receipt-pipeline/internal/model"
)

// Store caches classification results by normalized merchant key so repeated
// receipts from the same merchant skip the remote call. Implementations must
// support concurrent read and insert; last-writer-wins is acceptable since
// entries are idempotent for a given key.
type Store interface {
	Get(ctx context.Context, key string) (model.ClassificationResult, bool, error)
	Put(ctx context.Context, key string, result model.ClassificationResult) error
	Close() error
}

// memoryEntry is one cached result with its expiry.
type memoryEntry struct {
	expiry time.Time
	result model.ClassificationResult
}

// MemoryStore is an in-memory TTL Store. It is the default store and the one
// tests inject for isolation.
type MemoryStore struct {
	entries map[string]memoryEntry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// NewMemoryStore creates a memory store with the given TTL (15 minutes when
// zero) and starts its cleanup goroutine.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Get retrieves an unexpired cached result.
func (s *MemoryStore) Get(_ context.Context, key string) (model.ClassificationResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok || time.Now().After(entry.expiry) {
		return model.ClassificationResult{}, false, nil
	}
	return entry.result, true, nil
}

// Put stores a result under the merchant key.
func (s *MemoryStore) Put(_ context.Context, key string, result model.ClassificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		result: result,
		expiry: time.Now().Add(s.ttl),
	}
	return nil
}

// Size returns the number of cached entries.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	close(s.stopCh)
	return nil
}

// cleanup periodically evicts expired entries.
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for key, entry := range s.entries {
				if now.After(entry.expiry) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
