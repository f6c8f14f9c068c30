package favorite

import "errors"

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidUser      = errors.New("favorites need a registered user")
)
