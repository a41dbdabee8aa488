package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Message(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	order := entities.Order{
		ID:            "o1",
		UserID:        "u1",
		Status:        entities.StatusProcessing,
		IsPaid:        true,
		TotalPrice:    decimal.RequireFromString("200"),
		TransactionID: "pay_1",
	}

	m, err := events.NewEvent(events.OrderPaid, order, at).Message()
	require.NoError(t, err)

	assert.Equal(t, "o1", string(m.Key))
	require.Len(t, m.Headers, 1)
	assert.Equal(t, "order.paid", string(m.Headers[0].Value))

	var got map[string]any
	require.NoError(t, json.Unmarshal(m.Value, &got))
	assert.Equal(t, "order.paid", got["type"])
	assert.Equal(t, "200.00", got["total_price"])
	assert.Equal(t, "processing", got["status"])
	assert.Equal(t, true, got["is_paid"])
	assert.Equal(t, "pay_1", got["transaction_id"])
	assert.Equal(t, "2025-05-01T10:00:00Z", got["occurred_at"])
}
