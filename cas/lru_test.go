package cas

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/tshirts/interp"
)

func TestLRUCacheServesRepeatReads(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 2)
	h, err := cache.Put(testState(t, "75 00"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := Retrieve[interp.State](cache, h)
		require.NoError(t, err)
	}
	stats := cache.Stats()
	require.Equal(t, 1, stats.Misses)
	require.Equal(t, 2, stats.Hits)
	require.Equal(t, 1, stats.Size)
}

func TestLRUCacheEvicts(t *testing.T) {
	underlying := NewMemoryCAS()
	cache := NewLRUCache(underlying, 2)
	var hashes []Hash
	for _, src := range []string{"71 00", "72 00", "73 00"} {
		h, err := cache.Put(testState(t, src))
		require.NoError(t, err)
		hashes = append(hashes, h)
	}
	for _, h := range hashes {
		_, err := Retrieve[interp.State](cache, h)
		require.NoError(t, err)
	}
	stats := cache.Stats()
	require.Equal(t, 2, stats.Size)
	require.Equal(t, 2, stats.MaxSize)

	// The oldest entry was evicted from the cache but is still in the store.
	require.True(t, cache.Has(hashes[0]))
	_, err := Retrieve[interp.State](cache, hashes[0])
	require.NoError(t, err)
	require.Equal(t, 4, cache.Stats().Misses)
}

func TestLRUCacheDefaultSize(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 0)
	require.Equal(t, DefaultCacheSize, cache.Stats().MaxSize)
}
