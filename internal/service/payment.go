package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/internal/events"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/trm"
	"github.com/shopspring/decimal"
)

type PaymentRepo interface {
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	// Операция идемпотентна: условный UPDATE ... WHERE is_paid = false.
	// applied = false, если заказ уже был оплачен той же транзакцией.
	MarkPaid(ctx context.Context, orderID, transactionID, paymentMethod string, paidAt time.Time) (order entities.Order, applied bool, err error)

	SaveIntent(ctx context.Context, p entities.PaymentIntent) error
	GetIntent(ctx context.Context, intentID string) (entities.PaymentIntent, error)
	MarkIntentPaid(ctx context.Context, intentID string) error
}

type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, receiptID string) (entities.PaymentIntent, error)
}

type SignatureVerifier interface {
	Verify(orderID, paymentID, signature string) bool
}

type paymentService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      PaymentRepo
	gateway   Gateway
	verifier  SignatureVerifier
	cache     *OrderCache
	publisher EventPublisher
	currency  string
}

func NewPaymentService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo PaymentRepo,
	gateway Gateway,
	verifier SignatureVerifier,
	cache *OrderCache,
	publisher EventPublisher,
	currency string,
) *paymentService {
	return &paymentService{
		logger:    logger.With(slog.String("service", "payment")),
		txManager: txManager,
		repo:      repo,
		gateway:   gateway,
		verifier:  verifier,
		cache:     cache,
		publisher: publisher,
		currency:  currency,
	}
}

// CreatePaymentIntent регистрирует заказ в платёжном шлюзе на сумму заказа.
func (s *paymentService) CreatePaymentIntent(ctx context.Context, p entities.Principal, orderID string, amount decimal.Decimal) (entities.PaymentIntent, error) {
	if orderID == "" || !amount.IsPositive() {
		return entities.PaymentIntent{}, fmt.Errorf("%w: amount and order id are required", entities.ErrValidation)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.PaymentIntent{}, err
	}
	if !order.OwnedBy(p) {
		return entities.PaymentIntent{}, entities.ErrForbidden
	}
	if order.IsPaid {
		return entities.PaymentIntent{}, entities.ErrAlreadyPaid
	}
	if order.Status == entities.StatusCancelled {
		return entities.PaymentIntent{}, fmt.Errorf("%w: order is cancelled", entities.ErrValidation)
	}
	if order.ShippingAddress == nil || !order.ShippingAddress.Complete() {
		return entities.PaymentIntent{}, fmt.Errorf("%w: shipping address is required before payment", entities.ErrValidation)
	}
	// шлюз списывает целые пайсы
	if entities.ToMinorUnits(amount) != entities.ToMinorUnits(order.TotalPrice) {
		return entities.PaymentIntent{}, fmt.Errorf("%w: amount %s does not match order total %s",
			entities.ErrValidation, amount, order.TotalPrice)
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, order.TotalPrice, s.currency, order.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create payment intent", slog.String("order_id", order.ID), slog.Any("error", err))
		return entities.PaymentIntent{}, err
	}

	if err := s.repo.SaveIntent(ctx, intent); err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("failed to save payment intent: %w", err)
	}

	s.logger.InfoContext(ctx, "payment intent created",
		slog.String("order_id", order.ID),
		slog.String("intent_id", intent.ID),
		slog.Int64("amount", intent.Amount),
	)
	return intent, nil
}

// VerifyPayment проверяет подпись callback'а и помечает заказ оплаченным.
// Неверная подпись не меняет заказ; повтор того же callback'а возвращает уже оплаченный заказ.
func (s *paymentService) VerifyPayment(ctx context.Context, p entities.Principal, cb entities.PaymentCallback) (entities.Order, error) {
	if cb.GatewayOrderID == "" || cb.GatewayPaymentID == "" || cb.Signature == "" || cb.OrderID == "" {
		return entities.Order{}, fmt.Errorf("%w: missing payment verification details", entities.ErrValidation)
	}

	log := s.logger.With(
		slog.String("order_id", cb.OrderID),
		slog.String("gateway_order_id", cb.GatewayOrderID),
		slog.String("payment_id", cb.GatewayPaymentID),
	)

	if !s.verifier.Verify(cb.GatewayOrderID, cb.GatewayPaymentID, cb.Signature) {
		log.WarnContext(ctx, "invalid payment signature")
		return entities.Order{}, entities.ErrAuthentication
	}

	order, err := s.repo.GetOrderByID(ctx, cb.OrderID)
	if err != nil {
		return entities.Order{}, err
	}
	if !order.OwnedBy(p) {
		return entities.Order{}, entities.ErrForbidden
	}

	intent, err := s.repo.GetIntent(ctx, cb.GatewayOrderID)
	if errors.Is(err, entities.ErrIntentNotFound) || (err == nil && intent.OrderID != order.ID) {
		log.WarnContext(ctx, "gateway order does not belong to order")
		return entities.Order{}, fmt.Errorf("%w: gateway order does not match order", entities.ErrAuthentication)
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get payment intent: %w", err)
	}

	// точность timestamptz в postgres - микросекунды
	paidAt := time.Now().UTC().Truncate(time.Microsecond)
	var applied bool
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, applied, err = s.repo.MarkPaid(ctx, order.ID, cb.GatewayPaymentID, entities.DefaultPaymentMethod, paidAt)
		if err != nil || !applied {
			return err
		}
		return s.repo.MarkIntentPaid(ctx, intent.ID)
	})
	if err != nil {
		return entities.Order{}, err
	}

	s.cache.Invalidate(ctx, order.ID)

	if !applied {
		log.InfoContext(ctx, "repeated payment callback")
		return order, nil
	}

	log.InfoContext(ctx, "order paid")
	publish(ctx, s.logger, s.publisher, events.OrderPaid, order)
	return order, nil
}
