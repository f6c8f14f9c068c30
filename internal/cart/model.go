package cart

import (
	"strconv"
	"strings"
	"time"

	"ziggler-bot/internal/utils"

	"github.com/google/uuid"
)

const (
	// RetentionPeriod is how long a cart lives after creation.
	RetentionPeriod = 7 * 24 * time.Hour

	// FreeDeliveryThreshold is the cart total at and above which delivery is free.
	FreeDeliveryThreshold int64 = 100000
	// DeliveryFee is charged on carts below FreeDeliveryThreshold.
	DeliveryFee int64 = 5000

	// MaxLineQuantity caps a single line's quantity.
	MaxLineQuantity = 999
)

// Owner identifies who a cart belongs to. A platform user id wins over an
// anonymous session id when both are set.
type Owner struct {
	UserID    int64
	SessionID string
}

func (o Owner) Key() (string, error) {
	if o.UserID > 0 {
		return "user:" + strconv.FormatInt(o.UserID, 10), nil
	}
	if s := strings.TrimSpace(o.SessionID); s != "" {
		return "session:" + s, nil
	}
	return "", ErrInvalidOwner
}

// LineKey is the natural key of a cart line.
type LineKey struct {
	ProductID int64
	Size      string
	Color     string
}

type Line struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Size        string    `json:"size"`
	Color       string    `json:"color"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	Subtotal    int64     `json:"subtotal"`
	AddedAt     time.Time `json:"added_at"`
}

func (l *Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

type Cart struct {
	ID         uuid.UUID `json:"id"`
	OwnerKey   string    `json:"-"`
	UserID     *int64    `json:"user_id,omitempty"`
	SessionID  *string   `json:"session_id,omitempty"`
	Items      []Line    `json:"items"`
	TotalItems int       `json:"total_items"`
	TotalPrice int64     `json:"total_price"`
	Version    int       `json:"-"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Quote is the amount due for a cart total.
type Quote struct {
	ItemsTotal  int64 `json:"items_total"`
	DeliveryFee int64 `json:"delivery_fee"`
	Payable     int64 `json:"payable"`
}

func NewCart(owner Owner, ownerKey string, now time.Time) *Cart {
	c := &Cart{
		ID:        uuid.New(),
		OwnerKey:  ownerKey,
		Items:     []Line{},
		ExpiresAt: now.Add(RetentionPeriod),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if owner.UserID > 0 {
		id := owner.UserID
		c.UserID = &id
	} else {
		c.SessionID = utils.StrPtr(strings.TrimSpace(owner.SessionID))
	}
	return c
}

func (c *Cart) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(key LineKey) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// Add merges line into the cart. An existing line with the same key keeps its
// frozen unit price and only grows in quantity. The cart is left unchanged
// when the merged quantity would fall outside 1..MaxLineQuantity.
func (c *Cart) Add(line Line) error {
	if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(line.Key()); i >= 0 {
		existing := &c.Items[i]
		if existing.Quantity+line.Quantity > MaxLineQuantity {
			return ErrInvalidQuantity
		}
		existing.Quantity += line.Quantity
		existing.Subtotal = int64(existing.Quantity) * existing.UnitPrice
	} else {
		line.Subtotal = int64(line.Quantity) * line.UnitPrice
		c.Items = append(c.Items, line)
	}
	c.Recalculate()
	return nil
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(key LineKey, quantity int) error {
	if quantity > MaxLineQuantity {
		return ErrInvalidQuantity
	}
	i := c.indexOf(key)
	if i < 0 {
		return ErrItemNotFound
	}

	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = quantity
		c.Items[i].Subtotal = int64(quantity) * c.Items[i].UnitPrice
	}
	c.Recalculate()
	return nil
}

func (c *Cart) Clear() {
	c.Items = []Line{}
	c.Recalculate()
}

// Recalculate derives TotalItems and TotalPrice from the lines.
func (c *Cart) Recalculate() {
	items, price := 0, int64(0)
	for _, l := range c.Items {
		items += l.Quantity
		price += l.Subtotal
	}
	c.TotalItems = items
	c.TotalPrice = price
}

func (c *Cart) Quote() Quote {
	return QuoteFor(c.TotalPrice)
}

// QuoteFor applies the delivery-fee rule to a cart total.
func QuoteFor(total int64) Quote {
	q := Quote{ItemsTotal: total}
	if total < FreeDeliveryThreshold {
		q.DeliveryFee = DeliveryFee
	}
	q.Payable = total + q.DeliveryFee
	return q
}
