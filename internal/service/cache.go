package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

// OrderCache общий для сервисов заказов и оплаты.
// Снимок, прочитанный из базы до инвалидации, в кэше не остаётся:
// Fill сверяет версию, снятую до чтения, и удаляет запись, если за это время была инвалидация.
type OrderCache struct {
	cache   Cache
	logger  *slog.Logger
	version atomic.Uint64
}

func NewOrderCache(logger *slog.Logger, cache Cache) *OrderCache {
	return &OrderCache{
		cache:  cache,
		logger: logger.With(slog.String("component", "order_cache")),
	}
}

func (c *OrderCache) Get(ctx context.Context, orderID string) (entities.Order, bool) {
	data, ok := c.cache.Get(ctx, orderID)
	if !ok {
		return entities.Order{}, false
	}
	var order entities.Order
	if err := order.Unmarshal(data); err != nil {
		c.logger.WarnContext(ctx, "dropping broken cache entry", slog.String("order_id", orderID))
		c.cache.Delete(ctx, orderID)
		return entities.Order{}, false
	}
	return order, true
}

// Version снимается до чтения заказов из базы и передаётся в Fill.
func (c *OrderCache) Version() uint64 {
	return c.version.Load()
}

func (c *OrderCache) Fill(ctx context.Context, version uint64, orders ...entities.Order) {
	for _, order := range orders {
		data, err := order.Marshal()
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to marshal order", slog.String("order_id", order.ID), slog.Any("error", err))
			continue
		}
		c.cache.Set(ctx, order.ID, data)
	}

	if c.version.Load() == version {
		return
	}
	for _, order := range orders {
		c.cache.Delete(ctx, order.ID)
	}
}

// Invalidate вызывается после коммита изменения заказа.
func (c *OrderCache) Invalidate(ctx context.Context, orderID string) {
	c.version.Add(1)
	c.cache.Delete(ctx, orderID)
}
