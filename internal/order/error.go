package order

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrInvalidDelivery   = errors.New("invalid delivery info")
	ErrUnauthorized      = errors.New("unauthorized")
)
