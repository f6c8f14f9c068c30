package category

import (
	"context"
)

type Service interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListCategories returns the catalog menu: top-level categories with their
// subcategories attached.
func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return []*Category{}, nil
	}

	ids := make([]int64, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}

	children, err := s.repo.GetSubcategoriesByParentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		c.Subcategories = children[c.ID]
	}

	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}
