package product

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"ziggler-bot/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	ListByCategory(ctx context.Context, categoryID int64, skip, limit int) ([]*Product, int, error)
	Search(ctx context.Context, query string, limit int) ([]*Product, error)
	Featured(ctx context.Context, minRating float64, limit int) ([]*Product, error)
	GetSizes(ctx context.Context, productID int64, inStockOnly bool) ([]Size, error)
	GetColors(ctx context.Context, productID int64) ([]Color, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id,
	p.name,
	COALESCE(p.description, ''),
	p.price,
	p.discount_price,
	p.category_id,
	COALESCE(p.material, ''),
	COALESCE(p.fit_type, ''),
	p.rating,
	p.review_count,
	p.is_active,
	p.created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*Product, error) {
	var (
		p        Product
		discount sql.NullInt64
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&discount,
		&p.CategoryID,
		&p.Material,
		&p.FitType,
		&p.Rating,
		&p.ReviewCount,
		&p.IsActive,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if discount.Valid {
		d := discount.Int64
		p.DiscountPrice = &d
	}
	return &p, nil
}

func scanProducts(rows *sql.Rows) ([]*Product, error) {
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProductByID"),
		zap.Int64("product_id", opts.ProductID),
	)

	query := `SELECT` + productColumns + `
	FROM products p
	WHERE p.id = $1`
	if opts.OnlyActive {
		query += ` AND p.is_active = TRUE`
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, opts.ProductID))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("product not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) ListByCategory(
	ctx context.Context,
	categoryID int64,
	skip, limit int,
) ([]*Product, int, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByCategory"),
		zap.Int64("category_id", categoryID),
		zap.Int("skip", skip),
		zap.Int("limit", limit),
	)

	start := time.Now()

	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products p
		WHERE p.category_id = $1 AND p.is_active = TRUE
	`, categoryID).Scan(&total)
	if err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT`+productColumns+`
	FROM products p
	WHERE p.category_id = $1 AND p.is_active = TRUE
	ORDER BY p.id ASC
	LIMIT $2 OFFSET $3`, categoryID, limit, skip)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, 0, err
	}

	products, err := scanProducts(rows)
	if err != nil {
		log.Error("row scan failed", zap.Error(err))
		return nil, 0, err
	}

	log.Debug("query success",
		zap.Int("rows", len(products)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) Search(ctx context.Context, query string, limit int) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Search"),
		zap.String("query", query),
	)

	rows, err := r.db.QueryContext(ctx, `SELECT`+productColumns+`
	FROM products p
	WHERE p.is_active = TRUE
	  AND (p.name ILIKE $1 OR p.description ILIKE $1)
	ORDER BY p.rating DESC, p.id ASC
	LIMIT $2`, "%"+likeEscaper.Replace(query)+"%", limit)
	if err != nil {
		log.Error("search query failed", zap.Error(err))
		return nil, err
	}

	products, err := scanProducts(rows)
	if err != nil {
		log.Error("row scan failed", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (r *repository) Featured(ctx context.Context, minRating float64, limit int) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+productColumns+`
	FROM products p
	WHERE p.is_active = TRUE AND p.rating >= $1
	ORDER BY p.rating DESC, p.id ASC
	LIMIT $2`, minRating, limit)
	if err != nil {
		logger.FromCtx(ctx).Error("featured query failed",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return scanProducts(rows)
}

func (r *repository) GetSizes(ctx context.Context, productID int64, inStockOnly bool) ([]Size, error) {
	query := `
		SELECT id, product_id, size, quantity
		FROM product_sizes
		WHERE product_id = $1`
	if inStockOnly {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("sizes query failed",
			zap.String("layer", "repository"),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	sizes := []Size{}
	for rows.Next() {
		var s Size
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Label, &s.Quantity); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

func (r *repository) GetColors(ctx context.Context, productID int64) ([]Color, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, color_name, color_hex, emoji
		FROM product_colors
		WHERE product_id = $1
		ORDER BY id ASC`, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("colors query failed",
			zap.String("layer", "repository"),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	colors := []Color{}
	for rows.Next() {
		var c Color
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Name, &c.Hex, &c.Emoji); err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}
