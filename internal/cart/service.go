package cart

import (
	"context"
	"strings"
	"time"

	"ziggler-bot/internal/product"
)

// ProductReader resolves an active product; product.Service satisfies it.
type ProductReader interface {
	GetProduct(ctx context.Context, productID int64) (*product.Product, error)
}

type AddItemParams struct {
	Owner     Owner
	ProductID int64
	Size      string
	Color     string
	Quantity  int
}

type UpdateItemParams struct {
	Owner     Owner
	ProductID int64
	Size      string
	Color     string
	Quantity  int
}

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*Cart, error)
	UpdateItem(ctx context.Context, params UpdateItemParams) (*Cart, error)
	GetCart(ctx context.Context, owner Owner) (*Cart, error)
	Clear(ctx context.Context, owner Owner) error
}

type service struct {
	repo     Repository
	products ProductReader
	locks    *keyedMutex
	now      func() time.Time
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{
		repo:     repo,
		products: products,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// load returns the live cart for key. An expired cart is deleted and
// reported as absent.
func (s *service) load(ctx context.Context, key string, now time.Time) (*Cart, error) {
	c, err := s.repo.GetCart(ctx, key)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	if c.Expired(now) {
		if err := s.repo.DeleteCart(ctx, c.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return c, nil
}

// AddItem merges a line into the owner's cart, creating the cart on first
// use. The unit price is the product's effective price at this moment.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*Cart, error) {
	key, err := params.Owner.Key()
	if err != nil {
		return nil, err
	}
	if params.Quantity < 1 || params.Quantity > MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}
	size := strings.TrimSpace(params.Size)
	color := strings.TrimSpace(params.Color)
	if size == "" || color == "" {
		return nil, ErrInvalidVariant
	}

	p, err := s.products.GetProduct(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.now()
	c, err := s.load(ctx, key, now)
	if err != nil {
		return nil, err
	}

	isNew := c == nil
	if isNew {
		c = NewCart(params.Owner, key, now)
	}

	err = c.Add(Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		Size:        size,
		Color:       color,
		Quantity:    params.Quantity,
		UnitPrice:   p.EffectivePrice(),
		AddedAt:     now,
	})
	if err != nil {
		return nil, err
	}
	c.UpdatedAt = now

	if isNew {
		err = s.repo.CreateCart(ctx, c)
	} else {
		err = s.repo.SaveCart(ctx, c)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateItem sets a line's quantity; zero or less removes it.
func (s *service) UpdateItem(ctx context.Context, params UpdateItemParams) (*Cart, error) {
	key, err := params.Owner.Key()
	if err != nil {
		return nil, err
	}
	if params.Quantity > MaxLineQuantity {
		return nil, ErrInvalidQuantity
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.now()
	c, err := s.load(ctx, key, now)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	lk := LineKey{
		ProductID: params.ProductID,
		Size:      strings.TrimSpace(params.Size),
		Color:     strings.TrimSpace(params.Color),
	}
	if err := c.SetQuantity(lk, params.Quantity); err != nil {
		return nil, err
	}
	c.UpdatedAt = now

	if err := s.repo.SaveCart(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCart returns the owner's live cart or ErrCartNotFound.
func (s *service) GetCart(ctx context.Context, owner Owner) (*Cart, error) {
	key, err := owner.Key()
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	c, err := s.load(ctx, key, s.now())
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// Clear empties the owner's cart. Clearing a missing cart is not an error and
// the expiry is left untouched.
func (s *service) Clear(ctx context.Context, owner Owner) error {
	key, err := owner.Key()
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.now()
	c, err := s.load(ctx, key, now)
	if err != nil {
		return err
	}
	if c == nil || c.IsEmpty() {
		return nil
	}

	c.Clear()
	c.UpdatedAt = now
	return s.repo.SaveCart(ctx, c)
}
