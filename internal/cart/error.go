package cart

import (
	"errors"

	"ziggler-bot/internal/product"
)

var (
	// -- Validation & Input --
	ErrInvalidOwner    = errors.New("cart owner is required")
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidVariant  = errors.New("size and color are required")

	// -- Resource State --
	ErrProductNotFound  = product.ErrProductNotFound
	ErrCartNotFound     = errors.New("cart not found")
	ErrItemNotFound     = errors.New("cart item not found")
	ErrConcurrentUpdate = errors.New("cart was modified concurrently")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
