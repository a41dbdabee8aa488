package service_test

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
)

// memStore повторяет семантику postgres-репозитория для платёжных сценариев.
type memStore struct {
	mu      sync.Mutex
	orders  map[string]entities.Order
	intents map[string]entities.PaymentIntent

	failMarkIntentPaid error
}

func newMemStore(orders ...entities.Order) *memStore {
	s := &memStore{
		orders:  make(map[string]entities.Order),
		intents: make(map[string]entities.PaymentIntent),
	}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

// inTx откатывает все изменения callback'а при ошибке, как транзакция postgres.
func (s *memStore) inTx(ctx context.Context, callback func(ctx context.Context) error) error {
	s.mu.Lock()
	orders := maps.Clone(s.orders)
	intents := maps.Clone(s.intents)
	s.mu.Unlock()

	if err := callback(ctx); err != nil {
		s.mu.Lock()
		s.orders, s.intents = orders, intents
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) order(id string) entities.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memStore) GetOrderByID(_ context.Context, orderID string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (s *memStore) MarkPaid(_ context.Context, orderID, transactionID, paymentMethod string, paidAt time.Time) (entities.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return entities.Order{}, false, entities.ErrOrderNotFound
	}
	if o.IsPaid {
		if o.TransactionID == transactionID {
			return o, false, nil
		}
		return entities.Order{}, false, entities.ErrAlreadyPaid
	}

	o.IsPaid = true
	o.PaidAt = &paidAt
	o.TransactionID = transactionID
	o.PaymentMethod = paymentMethod
	if o.Status == entities.StatusPending {
		o.Status = entities.StatusProcessing
	}
	o.UpdatedAt = paidAt
	s.orders[orderID] = o
	return o, true, nil
}

func (s *memStore) SaveIntent(_ context.Context, p entities.PaymentIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.intents[p.ID]; !ok {
		s.intents[p.ID] = p
	}
	return nil
}

func (s *memStore) GetIntent(_ context.Context, intentID string) (entities.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.intents[intentID]
	if !ok {
		return entities.PaymentIntent{}, entities.ErrIntentNotFound
	}
	return p, nil
}

func (s *memStore) MarkIntentPaid(_ context.Context, intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failMarkIntentPaid != nil {
		return s.failMarkIntentPaid
	}
	p, ok := s.intents[intentID]
	if !ok {
		return entities.ErrIntentNotFound
	}
	p.Status = entities.IntentPaid
	s.intents[intentID] = p
	return nil
}
