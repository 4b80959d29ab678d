package assessmentstore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        5 * time.Minute,
		MaxEntries: 1024,
	}
}

// CachedStore layers an in-process expiring LRU in front of an origin store
// so repeat fingerprint lookups skip the backend.
type CachedStore struct {
	origin Store
	cache  *expirable.LRU[string, Record]
}

func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = def.MaxEntries
	}
	return &CachedStore{
		origin: origin,
		cache:  expirable.NewLRU[string, Record](cfg.MaxEntries, nil, cfg.TTL),
	}
}

func (s *CachedStore) Find(ctx context.Context, fingerprint string) (*Record, error) {
	if rec, ok := s.cache.Get(fingerprint); ok {
		out := rec
		return &out, nil
	}
	rec, err := s.origin.Find(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	s.cache.Add(fingerprint, *rec)
	out := *rec
	return &out, nil
}

func (s *CachedStore) Save(ctx context.Context, rec *Record) error {
	if err := s.origin.Save(ctx, rec); err != nil {
		return err
	}
	if rec != nil {
		s.cache.Add(rec.Fingerprint, *rec)
	}
	return nil
}
