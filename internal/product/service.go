package product

import (
	"context"
	"strings"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50

	featuredMinRating = 4.5
)

type Service interface {
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	ListByCategory(ctx context.Context, categoryID int64, skip, limit int) (*ListResult, error)
	Search(ctx context.Context, query string, limit int) ([]*Product, error)
	Featured(ctx context.Context, limit int) ([]*Product, error)
	ListVariants(ctx context.Context, productID int64) (*Variants, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetProduct returns an active product or ErrProductNotFound.
func (s *service) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, GetProductOptions{
		ProductID:  productID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func (s *service) ListByCategory(
	ctx context.Context,
	categoryID int64,
	skip, limit int,
) (*ListResult, error) {

	if skip < 0 {
		skip = 0
	}
	limit = normalizeLimit(limit)

	products, total, err := s.repo.ListByCategory(ctx, categoryID, skip, limit)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Products: products,
		Total:    total,
		HasMore:  skip+limit < total,
	}, nil
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]*Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearch
	}
	return s.repo.Search(ctx, query, normalizeLimit(limit))
}

// Featured lists highly rated products, best first.
func (s *service) Featured(ctx context.Context, limit int) ([]*Product, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.Featured(ctx, featuredMinRating, normalizeLimit(limit))
}

// ListVariants returns the in-stock sizes in SizeScale order and every color
// in insertion order. Colors carry no stock so they are never filtered.
// Unknown and inactive products give ErrProductNotFound.
func (s *service) ListVariants(ctx context.Context, productID int64) (*Variants, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	sizes, err := s.repo.GetSizes(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	colors, err := s.repo.GetColors(ctx, productID)
	if err != nil {
		return nil, err
	}

	v := &Variants{
		Sizes:  make([]string, 0, len(sizes)),
		Colors: make([]ColorOption, 0, len(colors)),
	}
	seen := make(map[string]bool, len(sizes))
	for _, sz := range sizes {
		if sz.Quantity <= 0 || seen[sz.Label] {
			continue
		}
		seen[sz.Label] = true
		v.Sizes = append(v.Sizes, sz.Label)
	}
	SortSizes(v.Sizes)

	for _, c := range colors {
		v.Colors = append(v.Colors, ColorOption{
			Label:  c.Name,
			Swatch: c.Hex,
			Emoji:  c.Emoji,
		})
	}

	return v, nil
}
