// Package gateway talks to the Razorpay Orders API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/config"
	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/shopspring/decimal"
)

type orderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

type RazorpayClient struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
}

func NewRazorpayClient(cfg config.Razorpay) *RazorpayClient {
	return &RazorpayClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
	}
}

// CreatePaymentIntent registers an auto-captured order with the gateway.
// receiptID is the local order id.
func (c *RazorpayClient) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency, receiptID string) (entities.PaymentIntent, error) {
	if !amount.IsPositive() || receiptID == "" {
		return entities.PaymentIntent{}, fmt.Errorf("%w: amount and receipt are required", entities.ErrGateway)
	}

	body, err := json.Marshal(orderRequest{
		Amount:         entities.ToMinorUnits(amount),
		Currency:       currency,
		Receipt:        receiptID,
		PaymentCapture: 1,
	})
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("%w: %v", entities.ErrGateway, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("%w: failed to read response: %v", entities.ErrGateway, err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if err := json.Unmarshal(data, &e); err == nil && e.Error.Description != "" {
			return entities.PaymentIntent{}, fmt.Errorf("%w: %s", entities.ErrGateway, e.Error.Description)
		}
		return entities.PaymentIntent{}, fmt.Errorf("%w: unexpected status %d", entities.ErrGateway, resp.StatusCode)
	}

	var o orderResponse
	if err := json.Unmarshal(data, &o); err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("%w: failed to decode response: %v", entities.ErrGateway, err)
	}
	if o.ID == "" {
		return entities.PaymentIntent{}, fmt.Errorf("%w: empty order id in response", entities.ErrGateway)
	}

	createdAt := time.Now().UTC()
	if o.CreatedAt > 0 {
		createdAt = time.Unix(o.CreatedAt, 0).UTC()
	}

	return entities.PaymentIntent{
		ID:        o.ID,
		OrderID:   receiptID,
		Amount:    o.Amount,
		Currency:  o.Currency,
		Status:    entities.IntentStatus(o.Status),
		CreatedAt: createdAt,
	}, nil
}
