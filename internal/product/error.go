package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidPrice    = errors.New("invalid product price")
	ErrInvalidRating   = errors.New("rating must be between 0 and 5")
	ErrEmptySearch     = errors.New("search query is empty")
)
