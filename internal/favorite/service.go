package favorite

import (
	"context"

	"ziggler-bot/internal/product"
)

// ProductReader resolves an active product; product.Service satisfies it.
type ProductReader interface {
	GetProduct(ctx context.Context, productID int64) (*product.Product, error)
}

type Service interface {
	// Toggle saves the product, or unsaves it when already saved, and
	// returns whether it is saved afterwards.
	Toggle(ctx context.Context, userID, productID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]*Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
}

type service struct {
	repo     Repository
	products ProductReader
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	if userID <= 0 {
		return false, ErrInvalidUser
	}

	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return false, err
	}
	// a concurrent toggle may have saved it first; it is saved either way
	if _, err := s.repo.Add(ctx, userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]*Favorite, error) {
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	return s.repo.List(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID, productID int64) error {
	if userID <= 0 {
		return ErrInvalidUser
	}

	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}
