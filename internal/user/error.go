package user

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidUser         = errors.New("invalid user id")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidPhone        = errors.New("invalid phone")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
