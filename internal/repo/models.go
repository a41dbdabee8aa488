package repo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	Items           []byte          `db:"items"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	Status          string          `db:"status"`
	IsPaid          bool            `db:"is_paid"`
	PaidAt          sql.NullTime    `db:"paid_at"`
	PaymentMethod   string          `db:"payment_method"`
	TransactionID   sql.NullString  `db:"transaction_id"`
	ShippingAddress []byte          `db:"shipping_address"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type OrderWithOwner struct {
	Order
	OwnerName  sql.NullString `db:"owner_name"`
	OwnerEmail sql.NullString `db:"owner_email"`
}

// Item хранится в jsonb-колонке items
type Item struct {
	Product string          `json:"product"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Qty     int             `json:"qty"`
	Image   string          `json:"image"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

type PaymentIntent struct {
	ID        string    `db:"id"`
	OrderID   string    `db:"order_id"`
	Amount    int64     `db:"amount"`
	Currency  string    `db:"currency"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func ItemsToJSON(items []entities.LineItem) (string, error) {
	res := make([]Item, 0, len(items))
	for _, it := range items {
		res = append(res, Item{
			Product: it.ProductID,
			Name:    it.Name,
			Price:   it.Price,
			Qty:     it.Qty,
			Image:   it.Image,
		})
	}
	data, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("failed to marshal items: %w", err)
	}
	return string(data), nil
}

func ShippingAddressToJSON(a *entities.ShippingAddress) (sql.NullString, error) {
	if a == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(ShippingAddress{
		Address:    a.Address,
		City:       a.City,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
	})
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal shipping address: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func OrderToEntity(o Order) (entities.Order, error) {
	var items []Item
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return entities.Order{}, fmt.Errorf("failed to unmarshal items of order %s: %w", o.ID, err)
	}

	order := entities.Order{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         make([]entities.LineItem, 0, len(items)),
		TotalPrice:    o.TotalPrice,
		Status:        entities.Status(o.Status),
		IsPaid:        o.IsPaid,
		PaymentMethod: o.PaymentMethod,
		TransactionID: nullStringToString(o.TransactionID),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	for _, it := range items {
		order.Items = append(order.Items, entities.LineItem{
			ProductID: it.Product,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
			Image:     it.Image,
		})
	}

	if o.PaidAt.Valid {
		paidAt := o.PaidAt.Time
		order.PaidAt = &paidAt
	}

	if len(o.ShippingAddress) > 0 {
		var a ShippingAddress
		if err := json.Unmarshal(o.ShippingAddress, &a); err != nil {
			return entities.Order{}, fmt.Errorf("failed to unmarshal shipping address of order %s: %w", o.ID, err)
		}
		order.ShippingAddress = &entities.ShippingAddress{
			Address:    a.Address,
			City:       a.City,
			PostalCode: a.PostalCode,
			Phone:      a.Phone,
		}
	}

	return order, nil
}

func OrderWithOwnerToEntity(o OrderWithOwner) (entities.Order, error) {
	order, err := OrderToEntity(o.Order)
	if err != nil {
		return entities.Order{}, err
	}
	if o.OwnerName.Valid || o.OwnerEmail.Valid {
		order.Owner = &entities.Owner{
			ID:    o.UserID,
			Name:  nullStringToString(o.OwnerName),
			Email: nullStringToString(o.OwnerEmail),
		}
	}
	return order, nil
}

func IntentToEntity(p PaymentIntent) entities.PaymentIntent {
	return entities.PaymentIntent{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    entities.IntentStatus(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
