package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/internal/events"
	"github.com/SergeyBogomolovv/shop-order-service/internal/service"
	mocks "github.com/SergeyBogomolovv/shop-order-service/internal/service/mocks"
	"github.com/SergeyBogomolovv/shop-order-service/internal/signature"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/cache"
	txMocks "github.com/SergeyBogomolovv/shop-order-service/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "razorpay-test-secret"

func pendingOrder(id string, owner entities.Principal, total int64) entities.Order {
	createdAt := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	return entities.Order{
		ID:            id,
		UserID:        owner.UserID,
		Items:         []entities.LineItem{item("p1", fmt.Sprint(total), 1)},
		TotalPrice:    decimal.NewFromInt(total),
		Status:        entities.StatusPending,
		PaymentMethod: entities.DefaultPaymentMethod,
		ShippingAddress: &entities.ShippingAddress{
			Address: "1 Main St", City: "Pune", PostalCode: "411001", Phone: "9999999999",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

type paymentAPI interface {
	CreatePaymentIntent(ctx context.Context, p entities.Principal, orderID string, amount decimal.Decimal) (entities.PaymentIntent, error)
	VerifyPayment(ctx context.Context, p entities.Principal, cb entities.PaymentCallback) (entities.Order, error)
}

type paymentDeps struct {
	store     *memStore
	gateway   *mocks.MockGateway
	publisher *mocks.MockEventPublisher
	tx        *txMocks.MockManager
	cache     *cache.LRUCache
	orders    *service.OrderCache
}

func newPaymentService(t *testing.T, orders ...entities.Order) (paymentAPI, *paymentDeps) {
	deps := &paymentDeps{
		store:     newMemStore(orders...),
		gateway:   mocks.NewMockGateway(t),
		publisher: mocks.NewMockEventPublisher(t),
		tx:        txMocks.NewMockManager(t),
		cache:     cache.NewLRUCache(100, time.Minute),
	}
	deps.orders = service.NewOrderCache(discardLogger(), deps.cache)
	svc := service.NewPaymentService(
		discardLogger(), deps.tx, deps.store, deps.gateway,
		signature.NewVerifier(testSecret), deps.orders, deps.publisher, "INR",
	)
	return svc, deps
}

func passthroughTx(tx *txMocks.MockManager) {
	tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		})
}

func callback(gatewayOrderID, paymentID, orderID string) entities.PaymentCallback {
	return entities.PaymentCallback{
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: paymentID,
		Signature:        signature.Sign(gatewayOrderID, paymentID, testSecret),
		OrderID:          orderID,
	}
}

func TestPaymentService_CreatePaymentIntent(t *testing.T) {
	order := pendingOrder("o1", alice, 200)
	svc, deps := newPaymentService(t, order)

	deps.gateway.EXPECT().
		CreatePaymentIntent(mock.Anything,
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(200)) }),
			"INR", "o1").
		Return(entities.PaymentIntent{
			ID:       "order_gw_1",
			OrderID:  "o1",
			Amount:   20000,
			Currency: "INR",
			Status:   entities.IntentCreated,
		}, nil).Once()

	intent, err := svc.CreatePaymentIntent(context.Background(), alice, "o1", decimal.NewFromInt(200))
	require.NoError(t, err)

	assert.Equal(t, "order_gw_1", intent.ID)
	assert.Equal(t, int64(20000), intent.Amount)
	assert.Equal(t, "o1", intent.OrderID)

	saved, err := deps.store.GetIntent(context.Background(), "order_gw_1")
	require.NoError(t, err)
	assert.Equal(t, "o1", saved.OrderID)
	assert.Equal(t, entities.IntentCreated, saved.Status)
}

func TestPaymentService_CreatePaymentIntent_FloatTotal(t *testing.T) {
	testCases := []struct {
		name      string
		stored    string
		requested string
	}{
		{name: "client float total", stored: "30.299999999999997", requested: "30.299999999999997"},
		{name: "rounded stored total", stored: "30.3", requested: "30.299999999999997"},
		{name: "rounded requested amount", stored: "30.299999999999997", requested: "30.3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := pendingOrder("o1", alice, 0)
			order.TotalPrice = decimal.RequireFromString(tc.stored)
			svc, deps := newPaymentService(t, order)

			deps.gateway.EXPECT().
				CreatePaymentIntent(mock.Anything,
					mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(order.TotalPrice) }),
					"INR", "o1").
				Return(entities.PaymentIntent{ID: "order_gw_1", OrderID: "o1", Amount: 3030, Currency: "INR"}, nil).Once()

			intent, err := svc.CreatePaymentIntent(context.Background(), alice, "o1", decimal.RequireFromString(tc.requested))
			require.NoError(t, err)
			assert.Equal(t, int64(3030), intent.Amount)
		})
	}
}

func TestPaymentService_CreatePaymentIntent_Errors(t *testing.T) {
	paid := pendingOrder("paid", alice, 200)
	paid.IsPaid = true
	cancelled := pendingOrder("cancelled", alice, 200)
	cancelled.Status = entities.StatusCancelled
	noAddress := pendingOrder("no-address", alice, 200)
	noAddress.ShippingAddress = nil
	partialAddress := pendingOrder("partial-address", alice, 200)
	partialAddress.ShippingAddress = &entities.ShippingAddress{Address: "1 Main St"}

	testCases := []struct {
		name      string
		principal entities.Principal
		orderID   string
		amount    decimal.Decimal
		gateway   func(g *mocks.MockGateway)
		wantErr   error
	}{
		{name: "empty order id", principal: alice, amount: decimal.NewFromInt(200), wantErr: entities.ErrValidation},
		{name: "zero amount", principal: alice, orderID: "o1", amount: decimal.Zero, wantErr: entities.ErrValidation},
		{name: "negative amount", principal: alice, orderID: "o1", amount: decimal.NewFromInt(-5), wantErr: entities.ErrValidation},
		{name: "unknown order", principal: alice, orderID: "missing", amount: decimal.NewFromInt(200), wantErr: entities.ErrOrderNotFound},
		{name: "foreign order", principal: bob, orderID: "o1", amount: decimal.NewFromInt(200), wantErr: entities.ErrForbidden},
		{name: "already paid", principal: alice, orderID: "paid", amount: decimal.NewFromInt(200), wantErr: entities.ErrAlreadyPaid},
		{name: "cancelled", principal: alice, orderID: "cancelled", amount: decimal.NewFromInt(200), wantErr: entities.ErrValidation},
		{name: "no shipping address", principal: alice, orderID: "no-address", amount: decimal.NewFromInt(200), wantErr: entities.ErrValidation},
		{name: "incomplete shipping address", principal: alice, orderID: "partial-address", amount: decimal.NewFromInt(200), wantErr: entities.ErrValidation},
		{name: "amount differs from total", principal: alice, orderID: "o1", amount: decimal.NewFromInt(1), wantErr: entities.ErrValidation},
		{name: "amount one paisa short", principal: alice, orderID: "o1", amount: decimal.RequireFromString("199.99"), wantErr: entities.ErrValidation},
		{
			name:      "gateway failure",
			principal: alice,
			orderID:   "o1",
			amount:    decimal.NewFromInt(200),
			gateway: func(g *mocks.MockGateway) {
				g.EXPECT().CreatePaymentIntent(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(entities.PaymentIntent{}, fmt.Errorf("%w: boom", entities.ErrGateway)).Once()
			},
			wantErr: entities.ErrGateway,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newPaymentService(t,
				pendingOrder("o1", alice, 200), paid, cancelled, noAddress, partialAddress)
			if tc.gateway != nil {
				tc.gateway(deps.gateway)
			}

			_, err := svc.CreatePaymentIntent(context.Background(), tc.principal, tc.orderID, tc.amount)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, deps.store.intents)
		})
	}
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	order := pendingOrder("o1", alice, 200)
	svc, deps := newPaymentService(t, order)
	require.NoError(t, deps.store.SaveIntent(context.Background(), entities.PaymentIntent{ID: "order_gw_1", OrderID: "o1", Status: entities.IntentCreated}))

	passthroughTx(deps.tx)
	deps.publisher.EXPECT().Publish(mock.Anything, eventOfType(events.OrderPaid)).Return(nil).Once()

	stale, err := order.Marshal()
	require.NoError(t, err)
	deps.cache.Set(context.Background(), "o1", stale)

	paid, err := svc.VerifyPayment(context.Background(), alice, callback("order_gw_1", "pay_1", "o1"))
	require.NoError(t, err)

	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	assert.False(t, paid.PaidAt.Before(paid.CreatedAt))
	assert.Equal(t, "pay_1", paid.TransactionID)
	assert.Equal(t, entities.DefaultPaymentMethod, paid.PaymentMethod)
	assert.Equal(t, entities.StatusProcessing, paid.Status)

	intent, err := deps.store.GetIntent(context.Background(), "order_gw_1")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentPaid, intent.Status)

	_, ok := deps.cache.Get(context.Background(), "o1")
	assert.False(t, ok, "cached order must be invalidated")

	t.Run("replay returns stored order without new event", func(t *testing.T) {
		again, err := svc.VerifyPayment(context.Background(), alice, callback("order_gw_1", "pay_1", "o1"))
		require.NoError(t, err)
		assert.Equal(t, paid, again)
	})

	t.Run("different payment on paid order", func(t *testing.T) {
		_, err := svc.VerifyPayment(context.Background(), alice, callback("order_gw_1", "pay_2", "o1"))
		assert.ErrorIs(t, err, entities.ErrAlreadyPaid)
		assert.Equal(t, "pay_1", deps.store.order("o1").TransactionID)
	})
}

func TestPaymentService_VerifyPayment_Rejected(t *testing.T) {
	valid := callback("order_gw_1", "pay_1", "o1")
	tampered := valid
	tampered.Signature = signature.Sign("order_gw_1", "pay_1", "wrong-secret")

	testCases := []struct {
		name      string
		principal entities.Principal
		cb        entities.PaymentCallback
		intent    *entities.PaymentIntent
		wantErr   error
	}{
		{name: "missing signature", principal: alice, cb: entities.PaymentCallback{GatewayOrderID: "order_gw_1", GatewayPaymentID: "pay_1", OrderID: "o1"}, wantErr: entities.ErrValidation},
		{name: "missing order id", principal: alice, cb: callback("order_gw_1", "pay_1", ""), wantErr: entities.ErrValidation},
		{name: "bad signature", principal: alice, cb: tampered, wantErr: entities.ErrAuthentication},
		{name: "unknown order", principal: alice, cb: callback("order_gw_1", "pay_1", "missing"), wantErr: entities.ErrOrderNotFound},
		{name: "foreign order", principal: bob, cb: valid, wantErr: entities.ErrForbidden},
		{name: "unknown gateway order", principal: alice, cb: valid, wantErr: entities.ErrAuthentication},
		{
			name:      "gateway order of another order",
			principal: alice,
			cb:        valid,
			intent:    &entities.PaymentIntent{ID: "order_gw_1", OrderID: "o2", Status: entities.IntentCreated},
			wantErr:   entities.ErrAuthentication,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := pendingOrder("o1", alice, 200)
			svc, deps := newPaymentService(t, order, pendingOrder("o2", alice, 50))
			if tc.intent != nil {
				require.NoError(t, deps.store.SaveIntent(context.Background(), *tc.intent))
			}

			got, err := svc.VerifyPayment(context.Background(), tc.principal, tc.cb)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, got.ID)
			assert.Equal(t, order, deps.store.order("o1"))
		})
	}
}

func TestPaymentService_VerifyPayment_SystemPrincipal(t *testing.T) {
	svc, deps := newPaymentService(t, pendingOrder("o1", alice, 200))
	require.NoError(t, deps.store.SaveIntent(context.Background(), entities.PaymentIntent{ID: "order_gw_1", OrderID: "o1"}))
	passthroughTx(deps.tx)
	deps.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()

	order, err := svc.VerifyPayment(context.Background(), entities.SystemPrincipal, callback("order_gw_1", "pay_1", "o1"))
	require.NoError(t, err)
	assert.True(t, order.IsPaid)
}

func TestPaymentService_VerifyPayment_TxFailure(t *testing.T) {
	svc, deps := newPaymentService(t, pendingOrder("o1", alice, 200))
	require.NoError(t, deps.store.SaveIntent(context.Background(), entities.PaymentIntent{ID: "order_gw_1", OrderID: "o1"}))

	txErr := errors.New("tx failed")
	deps.tx.EXPECT().Do(mock.Anything, mock.Anything).Return(txErr).Once()

	_, err := svc.VerifyPayment(context.Background(), alice, callback("order_gw_1", "pay_1", "o1"))
	assert.ErrorIs(t, err, txErr)
	assert.False(t, deps.store.order("o1").IsPaid)
}

func TestPaymentService_VerifyPayment_Rollback(t *testing.T) {
	order := pendingOrder("o1", alice, 200)
	svc, deps := newPaymentService(t, order)
	require.NoError(t, deps.store.SaveIntent(context.Background(), entities.PaymentIntent{ID: "order_gw_1", OrderID: "o1", Status: entities.IntentCreated}))

	intentErr := errors.New("intent update failed")
	deps.store.failMarkIntentPaid = intentErr
	deps.tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(deps.store.inTx).Once()

	_, err := svc.VerifyPayment(context.Background(), alice, callback("order_gw_1", "pay_1", "o1"))
	assert.ErrorIs(t, err, intentErr)

	assert.Equal(t, order, deps.store.order("o1"))
	intent, err := deps.store.GetIntent(context.Background(), "order_gw_1")
	require.NoError(t, err)
	assert.Equal(t, entities.IntentCreated, intent.Status)
}

func TestPaymentService_VerifyPayment_RandomTampering(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	order := pendingOrder("o1", alice, 200)
	svc, deps := newPaymentService(t, order)
	require.NoError(t, deps.store.SaveIntent(context.Background(), entities.PaymentIntent{ID: "order_gw_1", OrderID: "o1"}))

	for i := 0; i < 100; i++ {
		cb := callback("order_gw_1", fmt.Sprintf("pay_%d", rnd.Int()), "o1")
		sig := []byte(cb.Signature)
		pos := rnd.Intn(len(sig))
		if sig[pos] == '0' {
			sig[pos] = '1'
		} else {
			sig[pos] = '0'
		}
		cb.Signature = string(sig)

		_, err := svc.VerifyPayment(context.Background(), alice, cb)
		require.ErrorIs(t, err, entities.ErrAuthentication)
	}
	assert.Equal(t, order, deps.store.order("o1"))
}
