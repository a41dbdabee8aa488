package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache хранит сериализованные заказы по ключу.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

type item struct {
	key       string
	value     []byte
	expiresAt time.Time
}

func (i *item) expired(now time.Time) bool {
	return now.After(i.expiresAt)
}

// LRUCache вытесняет давно не читанные заказы при переполнении;
// просроченные записи удаляются при чтении и фоновой очисткой.
type LRUCache struct {
	mu       sync.Mutex
	order    *list.List
	items    map[string]*list.Element
	capacity int
	ttl      time.Duration
	sweep    time.Duration
}

type Option func(*LRUCache)

func WithSweepInterval(d time.Duration) Option {
	return func(c *LRUCache) { c.sweep = d }
}

func NewLRUCache(capacity int, ttl time.Duration, opts ...Option) *LRUCache {
	c := &LRUCache{
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		capacity: capacity,
		ttl:      ttl,
		sweep:    2 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *LRUCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	it := el.Value.(*item)
	if it.expired(time.Now()) {
		c.unlink(el)
		return nil, false
	}
	c.order.MoveToFront(el)
	return it.value, true
}

func (c *LRUCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		it := el.Value.(*item)
		it.value, it.expiresAt = value, expiresAt
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&item{key: key, value: value, expiresAt: expiresAt})
	for c.order.Len() > c.capacity {
		c.unlink(c.order.Back())
	}
}

func (c *LRUCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.unlink(el)
	}
}

func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Start запускает фоновую очистку просроченных записей до отмены ctx.
func (c *LRUCache) Start(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(c.sweep)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				c.purgeExpired(now)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (c *LRUCache) purgeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	// с хвоста, там самые старые записи
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if el.Value.(*item).expired(now) {
			c.unlink(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (c *LRUCache) unlink(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*item).key)
}
