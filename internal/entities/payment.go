package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts rupees to paise, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

type IntentStatus string

const (
	IntentCreated IntentStatus = "created"
	IntentPaid    IntentStatus = "paid"
)

// PaymentIntent is an order registered with the payment gateway.
// ID is the gateway-side identifier, OrderID is the local receipt.
type PaymentIntent struct {
	ID        string
	OrderID   string
	Amount    int64
	Currency  string
	Status    IntentStatus
	CreatedAt time.Time
}

// PaymentCallback carries the result of the hosted checkout.
type PaymentCallback struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	OrderID          string
}

type CreateOrderInput struct {
	Items           []LineItem
	TotalPrice      decimal.Decimal
	ShippingAddress *ShippingAddress
}
