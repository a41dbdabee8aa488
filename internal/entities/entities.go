package entities

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultPaymentMethod = "Razorpay"

type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
	Phone      string
}

func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Phone != ""
}

// LineItem is a copy of the product taken when the order was placed.
type LineItem struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Qty       int
	Image     string
}

func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

type Owner struct {
	ID    string
	Name  string
	Email string
}

type Order struct {
	ID     string
	UserID string
	// заполняется только в административном списке
	Owner *Owner

	Items      []LineItem
	TotalPrice decimal.Decimal

	Status        Status
	IsPaid        bool
	PaidAt        *time.Time
	PaymentMethod string
	TransactionID string

	ShippingAddress *ShippingAddress

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (o *Order) OwnedBy(p Principal) bool {
	return p.Privileged() || o.UserID == p.UserID
}

func (o *Order) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Order) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return ErrInvalidOrder
	}
	return nil
}

func init() {
	gob.Register(Order{})
	gob.Register(LineItem{})
	gob.Register(ShippingAddress{})
	gob.Register(Owner{})
}
