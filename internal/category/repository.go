package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ziggler-bot/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	GetSubcategoriesByParentIDs(ctx context.Context, parentIDs []int64) (map[int64][]*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `
	c.id,
	c.parent_id,
	c.name,
	COALESCE(c.name_kk, ''),
	COALESCE(c.name_en, ''),
	c.emoji,
	c.sort_order`

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	var (
		c        Category
		parentID sql.NullInt64
	)
	if err := row.Scan(&c.ID, &parentID, &c.Name, &c.NameKK, &c.NameEN, &c.Emoji, &c.SortOrder); err != nil {
		return nil, err
	}
	if parentID.Valid {
		p := parentID.Int64
		c.ParentID = &p
	}
	return &c, nil
}

// GetCategories returns the active top-level categories.
func (r *repository) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCategories"),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT`+categoryColumns+`
	FROM categories c
	WHERE c.is_active = TRUE AND c.parent_id IS NULL
	ORDER BY c.sort_order ASC, c.id ASC`)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, `SELECT`+categoryColumns+`
	FROM categories c
	WHERE c.id = $1 AND c.is_active = TRUE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("get category failed",
			zap.String("layer", "repository"),
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

// GetSubcategoriesByParentIDs fetches the active children of every parent in
// one query, grouped by parent id.
func (r *repository) GetSubcategoriesByParentIDs(
	ctx context.Context,
	parentIDs []int64,
) (map[int64][]*Category, error) {

	result := make(map[int64][]*Category, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT`+categoryColumns+`
	FROM categories c
	WHERE c.is_active = TRUE AND c.parent_id = ANY($1)
	ORDER BY c.sort_order ASC, c.id ASC`, pq.Array(parentIDs))
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		result[*c.ParentID] = append(result[*c.ParentID], c)
	}

	return result, rows.Err()
}
