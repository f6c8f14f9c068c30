package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ziggler-bot/internal/cart"
	"ziggler-bot/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrder stores o and its items and empties the source cart in one
	// transaction. The cart must still be at cartVersion.
	CreateOrder(ctx context.Context, o *Order, cartID uuid.UUID, cartVersion int) error
	// GetOrderByNumber returns nil, nil when no order has that number.
	GetOrderByNumber(ctx context.Context, number string) (*Order, error)
	ListOrders(ctx context.Context, userID int64, limit int) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID int64, from, to Status, at time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.order_number, o.user_id, o.status,
	o.items_total, o.delivery_fee, o.total_price,
	o.delivery_type, COALESCE(o.delivery_address, ''), o.delivery_city,
	o.phone, COALESCE(o.email, ''), COALESCE(o.notes, ''),
	o.created_at, o.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*Order, error) {
	var o Order
	if err := row.Scan(
		&o.ID,
		&o.Number,
		&o.UserID,
		&o.Status,
		&o.ItemsTotal,
		&o.DeliveryFee,
		&o.TotalPrice,
		&o.Delivery.Type,
		&o.Delivery.Address,
		&o.Delivery.City,
		&o.Delivery.Phone,
		&o.Delivery.Email,
		&o.Delivery.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.Items = []Item{}
	return &o, nil
}

func (r *repository) CreateOrder(ctx context.Context, o *Order, cartID uuid.UUID, cartVersion int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_number", o.Number),
		zap.String("cart_id", cartID.String()),
	)
	log.Debug("start create order transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id, status, items_total, delivery_fee, total_price,
			delivery_type, delivery_address, delivery_city, phone, email, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id
	`,
		o.Number, o.UserID, o.Status, o.ItemsTotal, o.DeliveryFee, o.TotalPrice,
		o.Delivery.Type, o.Delivery.Address, o.Delivery.City,
		o.Delivery.Phone, o.Delivery.Email, o.Delivery.Notes,
		o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert items
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, product_name, size, color, quantity, price, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`, o.ID, it.ProductID, it.ProductName, it.Size, it.Color,
			it.Quantity, it.Price, it.Subtotal).Scan(&it.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Int64("product_id", it.ProductID), zap.Error(err))
			return err
		}
	}

	// 3. Empty the source cart, unless it changed after pricing
	res, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET total_items = 0, total_price = 0, updated_at = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`, o.CreatedAt, cartID, cartVersion)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("cart changed during checkout")
		return cart.ErrConcurrentUpdate
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		log.Error("failed to delete cart items", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	log.Info("order created", zap.Int64("order_id", o.ID), zap.Int("items_count", len(o.Items)))
	return nil
}

func (r *repository) GetOrderByNumber(ctx context.Context, number string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrderByNumber"),
		zap.String("order_number", number),
	)

	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT`+orderColumns+`
	FROM orders o
	WHERE o.order_number = $1`, number))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("order not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get order", zap.Error(err))
		return nil, err
	}

	items, err := r.getItems(ctx, []int64{o.ID})
	if err != nil {
		log.Error("failed to get order items", zap.Error(err))
		return nil, err
	}
	if list, ok := items[o.ID]; ok {
		o.Items = list
	}
	return o, nil
}

func (r *repository) ListOrders(ctx context.Context, userID int64, limit int) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
		zap.Int64("user_id", userID),
		zap.Int("limit", limit),
	)

	start := time.Now()

	rows, err := r.db.QueryContext(ctx, `SELECT`+orderColumns+`
	FROM orders o
	WHERE o.user_id = $1
	ORDER BY o.created_at DESC, o.id DESC
	LIMIT $2`, userID, limit)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	if len(ids) > 0 {
		items, err := r.getItems(ctx, ids)
		if err != nil {
			log.Error("failed to get order items", zap.Error(err))
			return nil, err
		}
		for _, o := range orders {
			if list, ok := items[o.ID]; ok {
				o.Items = list
			}
		}
	}

	log.Debug("query success",
		zap.Int("rows", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)
	return orders, nil
}

func (r *repository) getItems(ctx context.Context, orderIDs []int64) (map[int64][]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, size, color, quantity, price, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]Item)
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.ProductID,
			&it.ProductName,
			&it.Size,
			&it.Color,
			&it.Quantity,
			&it.Price,
			&it.Subtotal,
		); err != nil {
			return nil, err
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}
	return result, rows.Err()
}

// UpdateStatus moves the order from one status to another. Zero affected rows
// means the order is no longer in status from.
func (r *repository) UpdateStatus(ctx context.Context, orderID int64, from, to Status, at time.Time) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateStatus"),
		zap.Int64("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`, to, at, orderID, from)
	if err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Warn("order status changed concurrently")
		return ErrInvalidTransition
	}
	return nil
}
