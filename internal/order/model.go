package order

import (
	"strings"
	"time"

	"ziggler-bot/internal/cart"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// next is the single forward step allowed from each non-terminal status.
var next = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusShipping,
	StatusShipping:  StatusDelivered,
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusShipping, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order in status s may move to to.
func (s Status) CanTransition(to Status) bool {
	if s.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return next[s] == to
}

type DeliveryType string

const (
	DeliveryCourier DeliveryType = "courier"
	DeliveryPickup  DeliveryType = "pickup"
)

const DefaultCity = "Almaty"

type DeliveryInfo struct {
	Type    DeliveryType `json:"type"`
	Address string       `json:"address,omitempty"`
	City    string       `json:"city"`
	Phone   string       `json:"phone"`
	Email   string       `json:"email,omitempty"`
	Notes   string       `json:"notes,omitempty"`
}

// Normalize trims the fields, applies the default city and validates.
func (d *DeliveryInfo) Normalize() error {
	d.Type = DeliveryType(strings.ToLower(strings.TrimSpace(string(d.Type))))
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Notes = strings.TrimSpace(d.Notes)

	if d.City == "" {
		d.City = DefaultCity
	}
	if d.Phone == "" {
		return ErrInvalidDelivery
	}
	switch d.Type {
	case DeliveryCourier:
		if d.Address == "" {
			return ErrInvalidDelivery
		}
	case DeliveryPickup:
	default:
		return ErrInvalidDelivery
	}
	return nil
}

type Order struct {
	ID          int64        `json:"id"`
	Number      string       `json:"order_number"`
	UserID      int64        `json:"user_id"`
	Status      Status       `json:"status"`
	ItemsTotal  int64        `json:"items_total"`
	DeliveryFee int64        `json:"delivery_fee"`
	TotalPrice  int64        `json:"total_price"`
	Delivery    DeliveryInfo `json:"delivery"`
	Items       []Item       `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Item struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"order_id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
	Subtotal    int64  `json:"subtotal"`
}

// NewFromCart snapshots the priced cart into a pending order. Line names and
// prices are copied, so later catalog edits never reach the order.
func NewFromCart(c *cart.Cart, userID int64, number string, delivery DeliveryInfo, now time.Time) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	q := c.Quote()
	o := &Order{
		Number:      number,
		UserID:      userID,
		Status:      StatusPending,
		ItemsTotal:  q.ItemsTotal,
		DeliveryFee: q.DeliveryFee,
		TotalPrice:  q.Payable,
		Delivery:    delivery,
		Items:       make([]Item, 0, len(c.Items)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, l := range c.Items {
		o.Items = append(o.Items, Item{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Size:        l.Size,
			Color:       l.Color,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return o, nil
}
