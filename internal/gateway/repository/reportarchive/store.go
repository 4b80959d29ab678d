package reportarchive

import (
	"context"
	"errors"
)

// Store archives formatted report text by fingerprint. Archiving is best
// effort; callers log failures and continue.
type Store interface {
	Put(ctx context.Context, fingerprint string, content []byte) error
	Get(ctx context.Context, fingerprint string) ([]byte, error)
}

var ErrNotFound = errors.New("archived report not found")
