package seed

import "errors"

var (
	ErrDuplicateID     = errors.New("duplicate id in catalog")
	ErrUnknownCategory = errors.New("product references an unknown category")
	ErrInvalidVariant  = errors.New("invalid size or color entry")
)
