package cart

import (
	"context"
	"database/sql"
	"errors"

	"ziggler-bot/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// GetCart returns nil, nil when the owner has no cart row.
	GetCart(ctx context.Context, ownerKey string) (*Cart, error)
	CreateCart(ctx context.Context, c *Cart) error
	SaveCart(ctx context.Context, c *Cart) error
	DeleteCart(ctx context.Context, cartID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCart(ctx context.Context, ownerKey string) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCart"),
		zap.String("owner_key", ownerKey),
	)

	var (
		c         Cart
		userID    sql.NullInt64
		sessionID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_key, user_id, session_id, total_items, total_price,
		       version, expires_at, created_at, updated_at
		FROM carts
		WHERE owner_key = $1
	`, ownerKey).Scan(
		&c.ID,
		&c.OwnerKey,
		&userID,
		&sessionID,
		&c.TotalItems,
		&c.TotalPrice,
		&c.Version,
		&c.ExpiresAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("cart not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get cart", zap.Error(err))
		return nil, err
	}
	if userID.Valid {
		id := userID.Int64
		c.UserID = &id
	}
	if sessionID.Valid {
		sid := sessionID.String
		c.SessionID = &sid
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, size, color, quantity, unit_price, subtotal, added_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY added_at ASC, product_id ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to get cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	c.Items = []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(
			&l.ProductID,
			&l.ProductName,
			&l.Size,
			&l.Color,
			&l.Quantity,
			&l.UnitPrice,
			&l.Subtotal,
			&l.AddedAt,
		); err != nil {
			log.Error("failed to scan cart item", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, l)
	}
	if err := rows.Err(); err != nil {
		log.Error("cart items iteration failed", zap.Error(err))
		return nil, err
	}

	// the two reads are not one snapshot; totals always follow the lines
	c.Recalculate()
	return &c, nil
}

// CreateCart inserts the cart row and its lines in one transaction. A second
// cart for the same owner key is reported as ErrConcurrentUpdate.
func (r *repository) CreateCart(ctx context.Context, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCart"),
		zap.String("cart_id", c.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO carts (
			id, owner_key, user_id, session_id, total_items, total_price,
			version, expires_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		c.ID, c.OwnerKey, nullInt64(c.UserID), nullString(c.SessionID),
		c.TotalItems, c.TotalPrice, c.Version,
		c.ExpiresAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			log.Warn("cart already exists for owner")
			return ErrConcurrentUpdate
		}
		log.Error("failed to insert cart", zap.Error(err))
		return err
	}

	if err := insertLines(ctx, tx, c); err != nil {
		log.Error("failed to insert cart items", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}
	return nil
}

// SaveCart replaces the stored lines and totals with the in-memory ones,
// provided nobody else wrote the cart since it was read.
func (r *repository) SaveCart(ctx context.Context, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SaveCart"),
		zap.String("cart_id", c.ID.String()),
		zap.Int("version", c.Version),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET total_items = $1, total_price = $2, updated_at = $3, version = version + 1
		WHERE id = $4 AND version = $5
	`, c.TotalItems, c.TotalPrice, c.UpdatedAt, c.ID, c.Version)
	if err != nil {
		log.Error("failed to update cart", zap.Error(err))
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("cart version mismatch")
		return ErrConcurrentUpdate
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		log.Error("failed to delete cart items", zap.Error(err))
		return err
	}
	if err := insertLines(ctx, tx, c); err != nil {
		log.Error("failed to insert cart items", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	c.Version++
	return nil
}

func (r *repository) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete cart",
			zap.String("layer", "repository"),
			zap.String("cart_id", cartID.String()),
			zap.Error(err),
		)
	}
	return err
}

func insertLines(ctx context.Context, tx *sql.Tx, c *Cart) error {
	for _, l := range c.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (
				cart_id, product_id, product_name, size, color,
				quantity, unit_price, subtotal, added_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, c.ID, l.ProductID, l.ProductName, l.Size, l.Color,
			l.Quantity, l.UnitPrice, l.Subtotal, l.AddedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
