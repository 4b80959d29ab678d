package assessmentstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps records in a map. Used when no DSN or redis address is
// configured and as the origin in store tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Find(_ context.Context, fingerprint string) (*Record, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, fmt.Errorf("fingerprint is required")
	}
	s.mu.RLock()
	rec, ok := s.records[fingerprint]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := rec
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	fingerprint := strings.TrimSpace(rec.Fingerprint)
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	now := time.Now()
	s.mu.Lock()
	stored := *rec
	stored.UpdatedAt = now
	if prev, ok := s.records[fingerprint]; ok {
		stored.CreatedAt = prev.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	s.records[fingerprint] = stored
	s.mu.Unlock()
	return nil
}
