package favorite

import (
	"context"
	"database/sql"

	"ziggler-bot/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// Add reports false when the product was already saved.
	Add(ctx context.Context, userID, productID int64) (bool, error)
	// Remove reports false when there was nothing to remove.
	Remove(ctx context.Context, userID, productID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]*Favorite, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID, productID int64) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Add"),
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
	)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	if err != nil {
		log.Error("failed to add favorite", zap.Error(err))
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Remove"),
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
	)

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		log.Error("failed to remove favorite", zap.Error(err))
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// List returns the user's saved active products, most recently saved first.
func (r *repository) List(ctx context.Context, userID int64) ([]*Favorite, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Int64("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.discount_price, p.rating, p.review_count, f.added_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1 AND p.is_active = TRUE
		ORDER BY f.added_at DESC, p.id DESC
	`, userID)
	if err != nil {
		log.Error("failed to list favorites", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	favorites := []*Favorite{}
	for rows.Next() {
		var (
			f        Favorite
			discount sql.NullInt64
		)
		if err := rows.Scan(
			&f.ProductID,
			&f.Name,
			&f.Price,
			&discount,
			&f.Rating,
			&f.ReviewCount,
			&f.AddedAt,
		); err != nil {
			log.Error("failed to scan favorite", zap.Error(err))
			return nil, err
		}
		if discount.Valid {
			d := discount.Int64
			f.DiscountPrice = &d
		}
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		log.Error("favorites iteration failed", zap.Error(err))
		return nil, err
	}
	return favorites, nil
}
