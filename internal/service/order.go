package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/config"
	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/internal/events"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	CreateOrder(ctx context.Context, o entities.Order) error
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]entities.Order, error)
	AllOrders(ctx context.Context) ([]entities.Order, error)
	LatestOrders(ctx context.Context, count int) ([]entities.Order, error)
	// Если from не пуст, статус меняется только из перечисленных статусов
	SetStatus(ctx context.Context, orderID string, status entities.Status, from []entities.Status) (entities.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

type orderService struct {
	logger    *slog.Logger
	repo      OrderRepo
	cache     *OrderCache
	publisher EventPublisher
	cfg       config.Order
}

func NewOrderService(logger *slog.Logger, repo OrderRepo, cache *OrderCache, publisher EventPublisher, cfg config.Order) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, p entities.Principal, in entities.CreateOrderInput) (entities.Order, error) {
	if err := s.validateOrder(in); err != nil {
		return entities.Order{}, err
	}

	if sum := itemsTotal(in.Items); !sum.Equal(in.TotalPrice) {
		if s.cfg.RecomputeTotal {
			return entities.Order{}, fmt.Errorf("%w: total price %s does not match items total %s",
				entities.ErrValidation, in.TotalPrice, sum)
		}
		s.logger.WarnContext(ctx, "submitted total does not match items",
			slog.String("user_id", p.UserID),
			slog.String("total_price", in.TotalPrice.String()),
			slog.String("items_total", sum.String()),
		)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	order := entities.Order{
		ID:              uuid.NewString(),
		UserID:          p.UserID,
		Items:           in.Items,
		TotalPrice:      in.TotalPrice,
		Status:          entities.StatusPending,
		PaymentMethod:   entities.DefaultPaymentMethod,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created", slog.String("order_id", order.ID), slog.String("user_id", order.UserID))
	s.publish(ctx, events.OrderCreated, order)
	return order, nil
}

func (s *orderService) validateOrder(in entities.CreateOrderInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: no order items", entities.ErrValidation)
	}
	for i, it := range in.Items {
		if it.ProductID == "" || it.Name == "" {
			return fmt.Errorf("%w: item %d must reference a product and have a name", entities.ErrValidation, i)
		}
		if it.Qty < 1 {
			return fmt.Errorf("%w: item %d quantity must be positive", entities.ErrValidation, i)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: item %d price must not be negative", entities.ErrValidation, i)
		}
	}
	if in.TotalPrice.IsNegative() {
		return fmt.Errorf("%w: total price must not be negative", entities.ErrValidation)
	}
	return nil
}

// GetOrder возвращает заказ владельцу или администратору.
func (s *orderService) GetOrder(ctx context.Context, p entities.Principal, orderID string) (entities.Order, error) {
	order, err := s.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !order.OwnedBy(p) {
		return entities.Order{}, entities.ErrForbidden
	}
	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if order, ok := s.cache.Get(ctx, orderID); ok {
		return order, nil
	}

	version := s.cache.Version()
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Fill(ctx, version, order)
	return order, nil
}

func (s *orderService) MyOrders(ctx context.Context, p entities.Principal) ([]entities.Order, error) {
	orders, err := s.repo.OrdersByUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) AllOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.repo.AllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) SetStatus(ctx context.Context, orderID string, status entities.Status) (entities.Order, error) {
	if !status.Valid() {
		return entities.Order{}, fmt.Errorf("%w: unknown status %q", entities.ErrValidation, status)
	}

	var from []entities.Status
	if s.cfg.StrictTransitions {
		from = status.Predecessors()
	}

	order, err := s.repo.SetStatus(ctx, orderID, status, from)
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Invalidate(ctx, orderID)
	s.logger.InfoContext(ctx, "order status changed", slog.String("order_id", orderID), slog.String("status", string(status)))
	s.publish(ctx, events.OrderStatusChanged, order)
	return order, nil
}

// WarmUpCache загружает последние заказы в кэш при старте.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	version := s.cache.Version()
	var orders []entities.Order
	fn := func() error {
		var err error
		orders, err = s.repo.LatestOrders(ctx, count)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  5,
		Multiplier:   2,
	}
	if err := utils.Retry(ctx, cfg, fn, context.Canceled); err != nil {
		return fmt.Errorf("failed to load latest orders: %w", err)
	}

	s.cache.Fill(ctx, version, orders...)
	s.logger.InfoContext(ctx, "cache warmed up", slog.Int("orders", len(orders)))
	return nil
}

// Ошибка публикации не откатывает операцию: событие - уведомление, а не источник истины.
func (s *orderService) publish(ctx context.Context, t events.Type, order entities.Order) {
	publish(ctx, s.logger, s.publisher, t, order)
}

func publish(ctx context.Context, logger *slog.Logger, p EventPublisher, t events.Type, order entities.Order) {
	if err := p.Publish(ctx, events.NewEvent(t, order, time.Now().UTC())); err != nil {
		logger.ErrorContext(ctx, "failed to publish event",
			slog.String("type", string(t)), slog.String("order_id", order.ID), slog.Any("error", err))
	}
}

func itemsTotal(items []entities.LineItem) decimal.Decimal {
	o := entities.Order{Items: items}
	return o.ItemsTotal()
}
