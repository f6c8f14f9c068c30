package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cartColumns = []string{
	"id", "owner_key", "user_id", "session_id", "total_items", "total_price",
	"version", "expires_at", "created_at", "updated_at",
}

var lineColumns = []string{
	"product_id", "product_name", "size", "color", "quantity", "unit_price", "subtotal", "added_at",
}

func sampleCart(now time.Time) *Cart {
	c := NewCart(Owner{UserID: 10}, "user:10", now)
	c.Add(Line{ProductID: 1, ProductName: "Tee", Size: "M", Color: "Black", Quantity: 2, UnitPrice: 10000, AddedAt: now})
	return c
}

func TestRepository_GetCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts WHERE owner_key = \$1`).
			WithArgs("user:10").
			WillReturnRows(sqlmock.NewRows(cartColumns).
				AddRow(id.String(), "user:10", int64(10), nil, 3, int64(30000), 2, now.Add(time.Hour), now, now))
		mock.ExpectQuery(`SELECT .* FROM cart_items WHERE cart_id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(lineColumns).
				AddRow(int64(1), "Tee", "M", "Black", 3, int64(10000), int64(30000), now))

		c, err := repo.GetCart(ctx, "user:10")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, id, c.ID)
		require.NotNil(t, c.UserID)
		assert.Equal(t, int64(10), *c.UserID)
		assert.Nil(t, c.SessionID)
		assert.Equal(t, 2, c.Version)
		require.Len(t, c.Items, 1)
		assert.Equal(t, "Tee", c.Items[0].ProductName)
		assert.Equal(t, int64(30000), c.Items[0].Subtotal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Totals follow the lines", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts WHERE owner_key = \$1`).
			WithArgs("user:10").
			WillReturnRows(sqlmock.NewRows(cartColumns).
				AddRow(id.String(), "user:10", int64(10), nil, 1, int64(10000), 4, now.Add(time.Hour), now, now))
		mock.ExpectQuery(`SELECT .* FROM cart_items WHERE cart_id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(lineColumns).
				AddRow(int64(1), "Tee", "M", "Black", 2, int64(10000), int64(20000), now).
				AddRow(int64(2), "Cap", "S", "Red", 1, int64(5000), int64(5000), now))

		c, err := repo.GetCart(ctx, "user:10")
		require.NoError(t, err)
		assert.Equal(t, 3, c.TotalItems)
		assert.Equal(t, int64(25000), c.TotalPrice)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts`).
			WithArgs("session:x").
			WillReturnRows(sqlmock.NewRows(cartColumns))

		c, err := repo.GetCart(ctx, "session:x")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Items query error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM carts`).
			WillReturnRows(sqlmock.NewRows(cartColumns).
				AddRow(id.String(), "session:x", nil, "x", 0, int64(0), 0, now, now, now))
		mock.ExpectQuery(`SELECT .* FROM cart_items`).
			WillReturnError(errors.New("boom"))

		_, err := repo.GetCart(ctx, "session:x")
		assert.EqualError(t, err, "boom")
	})
}

func TestRepository_CreateCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	c := sampleCart(time.Now().UTC())
	l := c.Items[0]

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO carts`).
			WithArgs(c.ID, "user:10", int64(10), nil, 2, int64(20000), 0, c.ExpiresAt, c.CreatedAt, c.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WithArgs(c.ID, l.ProductID, l.ProductName, l.Size, l.Color, l.Quantity, l.UnitPrice, l.Subtotal, l.AddedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.CreateCart(ctx, c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate owner", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO carts`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateCart(ctx, c)
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item insert error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO carts`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).WillReturnError(errors.New("insert item error"))
		mock.ExpectRollback()

		assert.Error(t, repo.CreateCart(ctx, c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SaveCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success bumps version", func(t *testing.T) {
		c := sampleCart(time.Now().UTC())
		c.Version = 4

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE carts SET total_items = \$1, total_price = \$2, updated_at = \$3, version = version \+ 1 WHERE id = \$4 AND version = \$5`).
			WithArgs(2, int64(20000), c.UpdatedAt, c.ID, 4).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \$1`).
			WithArgs(c.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO cart_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveCart(ctx, c))
		assert.Equal(t, 5, c.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stale version", func(t *testing.T) {
		c := sampleCart(time.Now().UTC())
		c.Version = 1

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE carts`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveCart(ctx, c)
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		assert.Equal(t, 1, c.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty cart deletes lines only", func(t *testing.T) {
		c := sampleCart(time.Now().UTC())
		c.Clear()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE carts`).
			WithArgs(0, int64(0), c.UpdatedAt, c.ID, 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM cart_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.SaveCart(ctx, c))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_DeleteCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM carts WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteCart(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
