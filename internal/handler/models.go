package handler

import (
	"encoding/json"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/shopspring/decimal"
)

// Order представляет заказ
type Order struct {
	ID              string           `json:"_id"`
	User            UserRef          `json:"user" swaggertype:"string"`
	OrderItems      []OrderItem      `json:"orderItems"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	PaymentMethod   string           `json:"paymentMethod"`
	TotalPrice      decimal.Decimal  `json:"totalPrice" swaggertype:"number"`
	Status          string           `json:"status"`
	IsPaid          bool             `json:"isPaid"`
	PaidAt          *time.Time       `json:"paidAt,omitempty"`
	TransactionID   string           `json:"transactionId,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// OrderItem позиция заказа, снимок товара на момент покупки
type OrderItem struct {
	Product string          `json:"product" validate:"required"`
	Name    string          `json:"name" validate:"required"`
	Price   decimal.Decimal `json:"price" swaggertype:"number"`
	Qty     int             `json:"qty" validate:"gte=1"`
	Image   string          `json:"image"`
}

// ShippingAddress адрес доставки
type ShippingAddress struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

// UserRef сериализуется как id пользователя, а в административном списке
// как объект {_id, name, email}.
type UserRef struct {
	ID    string
	Name  string
	Email string

	expanded bool
}

func (u UserRef) MarshalJSON() ([]byte, error) {
	if !u.expanded {
		return json.Marshal(u.ID)
	}
	return json.Marshal(struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{u.ID, u.Name, u.Email})
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &u.ID); err == nil {
		u.expanded = false
		return nil
	}
	var obj struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*u = UserRef{ID: obj.ID, Name: obj.Name, Email: obj.Email, expanded: true}
	return nil
}

type CreateOrderRequest struct {
	OrderItems      []OrderItem      `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress *ShippingAddress `json:"shippingAddress" validate:"omitempty"`
	TotalPrice      decimal.Decimal  `json:"totalPrice" swaggertype:"number"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CreatePaymentRequest struct {
	Amount  decimal.Decimal `json:"amount" swaggertype:"number"`
	OrderID string          `json:"orderId" validate:"required"`
}

// PaymentIntentResponse заказ в платёжном шлюзе; amount в минимальных единицах валюты
type PaymentIntentResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Receipt  string `json:"receipt"`
}

// VerifyPaymentRequest тело callback'а checkout, оно же сообщение в kafka
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
	OrderID           string `json:"orderId" validate:"required"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

func OrderItemJSONToEntity(i OrderItem) entities.LineItem {
	return entities.LineItem{
		ProductID: i.Product,
		Name:      i.Name,
		Price:     i.Price,
		Qty:       i.Qty,
		Image:     i.Image,
	}
}

func OrderItemEntityToJSON(i entities.LineItem) OrderItem {
	return OrderItem{
		Product: i.ProductID,
		Name:    i.Name,
		Price:   i.Price,
		Qty:     i.Qty,
		Image:   i.Image,
	}
}

func ShippingAddressJSONToEntity(a *ShippingAddress) *entities.ShippingAddress {
	if a == nil {
		return nil
	}
	return &entities.ShippingAddress{
		Address:    a.Address,
		City:       a.City,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	}
}

func ShippingAddressEntityToJSON(a *entities.ShippingAddress) *ShippingAddress {
	if a == nil {
		return nil
	}
	return &ShippingAddress{
		Address:    a.Address,
		City:       a.City,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	}
}

func CreateOrderJSONToEntity(req CreateOrderRequest) entities.CreateOrderInput {
	items := make([]entities.LineItem, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		items = append(items, OrderItemJSONToEntity(it))
	}
	return entities.CreateOrderInput{
		Items:           items,
		TotalPrice:      req.TotalPrice,
		ShippingAddress: ShippingAddressJSONToEntity(req.ShippingAddress),
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemEntityToJSON(it))
	}

	user := UserRef{ID: o.UserID}
	if o.Owner != nil {
		user = UserRef{ID: o.UserID, Name: o.Owner.Name, Email: o.Owner.Email, expanded: true}
	}

	return Order{
		ID:              o.ID,
		User:            user,
		OrderItems:      items,
		ShippingAddress: ShippingAddressEntityToJSON(o.ShippingAddress),
		PaymentMethod:   o.PaymentMethod,
		TotalPrice:      o.TotalPrice,
		Status:          string(o.Status),
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		TransactionID:   o.TransactionID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func OrdersEntityToJSON(orders []entities.Order) []Order {
	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	return res
}

func PaymentIntentEntityToJSON(p entities.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		ID:       p.ID,
		Amount:   p.Amount,
		Currency: p.Currency,
		Status:   string(p.Status),
		Receipt:  p.OrderID,
	}
}

func VerifyPaymentJSONToEntity(req VerifyPaymentRequest) entities.PaymentCallback {
	return entities.PaymentCallback{
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		Signature:        req.RazorpaySignature,
		OrderID:          req.OrderID,
	}
}
