package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*EmbeddingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewEmbeddingCache(client, ttl), mr
}

func TestEmbeddingCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "nomic-embed-text", "pump")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "nomic-embed-text", "pump", []float32{0.25, -1}))

	vec, ok, err := c.Get(ctx, "nomic-embed-text", "pump")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []float32{0.25, -1}, vec)

	_, ok, err = c.Get(ctx, "other-model", "pump")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbeddingCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "m", "text", []float32{1}))
	assert.Equal(t, 10*time.Second, mr.TTL(embeddingKey("m", "text")))

	mr.FastForward(11 * time.Second)
	_, ok, err := c.Get(ctx, "m", "text")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmbeddingKey(t *testing.T) {
	key := embeddingKey("m", "abc")
	assert.Equal(t, "emb:m:ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", key)
}

func TestEmbeddingCache_Corrupt(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(embeddingKey("m", "t"), "not-json"))

	_, _, err := c.Get(context.Background(), "m", "t")
	assert.Error(t, err)
}
