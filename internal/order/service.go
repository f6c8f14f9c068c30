package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"ziggler-bot/internal/cart"
	"ziggler-bot/internal/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 50
)

// CartReader returns the caller's live cart; cart.Service satisfies it.
type CartReader interface {
	GetCart(ctx context.Context, owner cart.Owner) (*cart.Cart, error)
}

type PlaceOrderParams struct {
	UserID   int64
	Delivery DeliveryInfo
}

type Service interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error)
	GetOrder(ctx context.Context, number string, userID int64) (*Order, error)
	ListOrders(ctx context.Context, userID int64, limit int) ([]*Order, error)
	CancelOrder(ctx context.Context, number string, userID int64) (*Order, error)
	UpdateStatus(ctx context.Context, number string, status string) (*Order, error)
}

type service struct {
	repo      Repository
	carts     CartReader
	now       func() time.Time
	newNumber func(time.Time) string
}

func NewService(repo Repository, carts CartReader) Service {
	return &service{
		repo:      repo,
		carts:     carts,
		now:       time.Now,
		newNumber: utils.GenerateOrderNumber,
	}
}

// PlaceOrder snapshots the user's cart into a pending order and empties the
// cart in the same transaction.
func (s *service) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error) {
	if params.UserID <= 0 {
		return nil, ErrUnauthorized
	}

	delivery := params.Delivery
	if err := delivery.Normalize(); err != nil {
		return nil, err
	}

	c, err := s.carts.GetCart(ctx, cart.Owner{UserID: params.UserID})
	if errors.Is(err, cart.ErrCartNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	now := s.now()
	o, err := NewFromCart(c, params.UserID, s.newNumber(now), delivery, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, o, c.ID, c.Version); err != nil {
		return nil, err
	}
	return o, nil
}

// GetOrder returns the order only to the user who placed it.
func (s *service) GetOrder(ctx context.Context, number string, userID int64) (*Order, error) {
	o, err := s.repo.GetOrderByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, userID int64, limit int) ([]*Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListOrders(ctx, userID, limit)
}

func (s *service) CancelOrder(ctx context.Context, number string, userID int64) (*Order, error) {
	o, err := s.GetOrder(ctx, number, userID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, StatusCancelled)
}

// UpdateStatus is the admin path; ownership is not checked.
func (s *service) UpdateStatus(ctx context.Context, number string, status string) (*Order, error) {
	to, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetOrderByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return s.transition(ctx, o, to)
}

func (s *service) transition(ctx context.Context, o *Order, to Status) (*Order, error) {
	if !o.Status.CanTransition(to) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, o.ID, o.Status, to, now); err != nil {
		return nil, err
	}
	o.Status = to
	o.UpdatedAt = now
	return o, nil
}
