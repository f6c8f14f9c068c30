package user

import (
	"context"
	"strings"

	"ziggler-bot/internal/utils"
)

type Service interface {
	Upsert(ctx context.Context, params UpsertParams) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	UpdateContact(ctx context.Context, params UpdateContactParams) (*User, error)
	ToggleNotifications(ctx context.Context, id int64) (bool, error)
	SetLanguage(ctx context.Context, id int64, lang string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Upsert(ctx context.Context, params UpsertParams) (*User, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidUser
	}
	params.Username = strings.TrimPrefix(strings.TrimSpace(params.Username), "@")
	params.FullName = strings.TrimSpace(params.FullName)
	return s.repo.Upsert(ctx, params)
}

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	return utils.StrPtr(strings.TrimSpace(*v))
}

func (s *service) UpdateContact(ctx context.Context, params UpdateContactParams) (*User, error) {
	params.FullName = trimPtr(params.FullName)
	params.Phone = trimPtr(params.Phone)
	params.Email = trimPtr(params.Email)

	if params.Phone != nil && !validPhone(*params.Phone) {
		return nil, ErrInvalidPhone
	}
	if params.Email != nil && !validEmail(*params.Email) {
		return nil, ErrInvalidEmail
	}

	u, err := s.repo.UpdateContact(ctx, params)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ToggleNotifications flips the flag and returns the new value.
func (s *service) ToggleNotifications(ctx context.Context, id int64) (bool, error) {
	return s.repo.ToggleNotifications(ctx, id)
}

func (s *service) SetLanguage(ctx context.Context, id int64, lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !supportedLanguages[lang] {
		return ErrUnsupportedLanguage
	}
	return s.repo.SetLanguage(ctx, id, lang)
}

func validPhone(p string) bool {
	digits := 0
	for i, r := range p {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 10 && digits <= 15
}

func validEmail(e string) bool {
	at := strings.LastIndex(e, "@")
	return at > 0 && at < len(e)-1 && strings.Contains(e[at+1:], ".") && !strings.ContainsAny(e, " \t")
}
