package reportarchive

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, fingerprint string, content []byte) error {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	s.mu.Lock()
	s.objects[fingerprint] = append([]byte(nil), content...)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, fingerprint string) ([]byte, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, fmt.Errorf("fingerprint is required")
	}
	s.mu.RLock()
	content, ok := s.objects[fingerprint]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), content...), nil
}
