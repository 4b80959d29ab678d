package assessmentstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), srv
}

func TestRedisStore_SaveAndFind(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	ctx := context.Background()

	_, err := store.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	rec := sampleRecord("fp-1")
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Find(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Report, got.Report)
	assert.Equal(t, rec.Input, got.Input)
}

func TestRedisStore_Upsert(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRecord("fp-1")))
	updated := sampleRecord("fp-1")
	updated.Report.OverallScore = 77
	require.NoError(t, store.Save(ctx, updated))

	got, err := store.Find(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, 77, got.Report.OverallScore)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, srv := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleRecord("fp-1")))
	srv.FastForward(2 * time.Minute)

	_, err := store.Find(ctx, "fp-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
