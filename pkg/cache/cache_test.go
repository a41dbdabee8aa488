package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestLRUCache(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		ttl      time.Duration
		actions  func(t *testing.T, c *LRUCache)
	}{
		{
			name:     "set and get within TTL",
			capacity: 2,
			ttl:      time.Second,
			actions: func(t *testing.T, c *LRUCache) {
				c.Set(ctx, "a", []byte("1"))
				v, ok := c.Get(ctx, "a")
				require.True(t, ok)
				assert.Equal(t, "1", string(v))
			},
		},
		{
			name:     "get after expiration",
			capacity: 2,
			ttl:      50 * time.Millisecond,
			actions: func(t *testing.T, c *LRUCache) {
				c.Set(ctx, "a", []byte("1"))
				time.Sleep(60 * time.Millisecond)
				_, ok := c.Get(ctx, "a")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Len())
			},
		},
		{
			name:     "evict least recently read",
			capacity: 2,
			ttl:      time.Second,
			actions: func(t *testing.T, c *LRUCache) {
				c.Set(ctx, "a", []byte("1"))
				c.Set(ctx, "b", []byte("2"))
				c.Get(ctx, "a")
				c.Set(ctx, "c", []byte("3"))

				_, ok := c.Get(ctx, "b")
				assert.False(t, ok, "b should be evicted")
				_, ok = c.Get(ctx, "a")
				assert.True(t, ok)
				_, ok = c.Get(ctx, "c")
				assert.True(t, ok)
			},
		},
		{
			name:     "update value resets TTL",
			capacity: 2,
			ttl:      50 * time.Millisecond,
			actions: func(t *testing.T, c *LRUCache) {
				c.Set(ctx, "a", []byte("1"))
				time.Sleep(30 * time.Millisecond)
				c.Set(ctx, "a", []byte("2"))
				time.Sleep(30 * time.Millisecond)
				v, ok := c.Get(ctx, "a")
				require.True(t, ok)
				assert.Equal(t, "2", string(v))
			},
		},
		{
			name:     "delete removes key",
			capacity: 2,
			ttl:      time.Second,
			actions: func(t *testing.T, c *LRUCache) {
				c.Set(ctx, "a", []byte("1"))
				c.Set(ctx, "b", []byte("2"))
				c.Delete(ctx, "a")
				c.Delete(ctx, "missing")
				_, ok := c.Get(ctx, "a")
				assert.False(t, ok)
				assert.Equal(t, 1, c.Len())
			},
		},
		{
			name:     "purge removes only expired",
			capacity: 10,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache) {
				for i := range 5 {
					c.Set(ctx, fmt.Sprint(i), []byte("x"))
				}
				assert.Equal(t, 0, c.purgeExpired(time.Now()))
				assert.Equal(t, 5, c.purgeExpired(time.Now().Add(2*time.Minute)))
				assert.Equal(t, 0, c.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLRUCache(tt.capacity, tt.ttl)
			tt.actions(t, c)
		})
	}
}

func TestLRUCache_Sweeper(t *testing.T) {
	c := NewLRUCache(2, 10*time.Millisecond, WithSweepInterval(5*time.Millisecond))
	sctx, cancel := context.WithCancel(ctx)
	defer cancel()
	require.NoError(t, c.Start(sctx))

	c.Set(ctx, "a", []byte("1"))
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}
