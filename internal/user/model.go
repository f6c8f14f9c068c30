package user

import "time"

const (
	LanguageRU = "ru"
	LanguageKK = "kk"
	LanguageEN = "en"

	DefaultLanguage = LanguageRU
)

var supportedLanguages = map[string]bool{
	LanguageRU: true,
	LanguageKK: true,
	LanguageEN: true,
}

// User is keyed by the messaging platform's id.
type User struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username,omitempty"`
	FullName             string    `json:"full_name,omitempty"`
	Phone                *string   `json:"phone,omitempty"`
	Email                *string   `json:"email,omitempty"`
	Language             string    `json:"language"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type UpsertParams struct {
	ID       int64
	Username string
	FullName string
}

// UpdateContactParams leaves nil fields unchanged.
type UpdateContactParams struct {
	UserID   int64
	FullName *string
	Phone    *string
	Email    *string
}
