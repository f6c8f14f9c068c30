package seed

import (
	"context"
	"database/sql"
	"fmt"

	"ziggler-bot/internal/logger"

	"go.uber.org/zap"
)

// Stats counts the rows Apply wrote.
type Stats struct {
	Categories int
	Products   int
	Sizes      int
	Colors     int
}

// Apply upserts the whole catalog in one transaction. Rows absent from the
// catalog are left alone.
func Apply(ctx context.Context, db *sql.DB, c *Catalog) (*Stats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "seed"),
		zap.String("method", "Apply"),
	)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	stats := &Stats{}

	for _, cat := range c.Categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, parent_id, name, name_kk, name_en, emoji, sort_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
			ON CONFLICT (id) DO UPDATE
			SET parent_id = EXCLUDED.parent_id,
				name = EXCLUDED.name,
				name_kk = EXCLUDED.name_kk,
				name_en = EXCLUDED.name_en,
				emoji = EXCLUDED.emoji,
				sort_order = EXCLUDED.sort_order,
				is_active = TRUE
		`, cat.ID, nullInt64(cat.ParentID), cat.Name, cat.NameKK, cat.NameEN, cat.Emoji, cat.SortOrder)
		if err != nil {
			log.Error("failed to upsert category", zap.Int64("category_id", cat.ID), zap.Error(err))
			return nil, fmt.Errorf("upsert category %d: %w", cat.ID, err)
		}
		stats.Categories++
	}

	for _, p := range c.Products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (
				id, name, description, price, discount_price, category_id,
				material, fit_type, rating, review_count, is_active
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
				description = EXCLUDED.description,
				price = EXCLUDED.price,
				discount_price = EXCLUDED.discount_price,
				category_id = EXCLUDED.category_id,
				material = EXCLUDED.material,
				fit_type = EXCLUDED.fit_type,
				rating = EXCLUDED.rating,
				review_count = EXCLUDED.review_count,
				is_active = TRUE
		`,
			p.ID, p.Name, p.Description, p.Price, nullInt64(p.DiscountPrice), p.CategoryID,
			p.Material, p.FitType, p.Rating, p.ReviewCount,
		)
		if err != nil {
			log.Error("failed to upsert product", zap.Int64("product_id", p.ID), zap.Error(err))
			return nil, fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
		stats.Products++

		for _, s := range p.Sizes {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO product_sizes (product_id, size, quantity)
				VALUES ($1, $2, $3)
				ON CONFLICT (product_id, size) DO UPDATE SET quantity = EXCLUDED.quantity
			`, p.ID, s.Label, s.Quantity)
			if err != nil {
				return nil, fmt.Errorf("upsert size %s of product %d: %w", s.Label, p.ID, err)
			}
			stats.Sizes++
		}

		for _, col := range p.Colors {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO product_colors (product_id, color_name, color_hex, emoji)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (product_id, color_name) DO UPDATE
				SET color_hex = EXCLUDED.color_hex, emoji = EXCLUDED.emoji
			`, p.ID, col.Name, col.Hex, col.Emoji)
			if err != nil {
				return nil, fmt.Errorf("upsert color %s of product %d: %w", col.Name, p.ID, err)
			}
			stats.Colors++
		}
	}

	// explicit ids leave the serial sequences behind
	for _, table := range []string{"categories", "products"} {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 1))`, table))
		if err != nil {
			return nil, fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit seed", zap.Error(err))
		return nil, err
	}

	log.Info("catalog seeded",
		zap.Int("categories", stats.Categories),
		zap.Int("products", stats.Products),
		zap.Int("sizes", stats.Sizes),
		zap.Int("colors", stats.Colors),
	)
	return stats, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
