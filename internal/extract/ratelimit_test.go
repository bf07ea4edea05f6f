package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsUpToCapacity(t *testing.T) {
	rl := newRateLimiter(5)
	defer rl.Close()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.tryAcquire(), "token %d should be available", i)
	}
	assert.False(t, rl.tryAcquire(), "bucket should be empty")
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	require.NoError(t, rl.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDocumentCache_SetGet(t *testing.T) {
	cache := newDocumentCache(time.Minute)
	defer cache.Close()

	doc, found := cache.get("missing")
	assert.False(t, found)
	assert.Empty(t, doc.HolderName)

	stored := FallbackDocument("cache test")
	cache.set("key", stored)

	got, found := cache.get("key")
	assert.True(t, found)
	assert.Equal(t, stored, got)
	assert.Equal(t, 1, cache.size())
}

func TestDocumentCache_Expiry(t *testing.T) {
	cache := newDocumentCache(10 * time.Millisecond)
	defer cache.Close()

	cache.set("key", FallbackDocument("cache test"))
	time.Sleep(25 * time.Millisecond)

	_, found := cache.get("key")
	assert.False(t, found, "entry should have expired")
}
