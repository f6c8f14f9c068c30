package cart

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertTotals(t *testing.T, c *Cart) {
	t.Helper()
	items, price := 0, int64(0)
	for _, l := range c.Items {
		assert.Equal(t, int64(l.Quantity)*l.UnitPrice, l.Subtotal)
		items += l.Quantity
		price += l.Subtotal
	}
	assert.Equal(t, items, c.TotalItems)
	assert.Equal(t, price, c.TotalPrice)
}

func TestOwner_Key(t *testing.T) {
	t.Run("User id wins", func(t *testing.T) {
		key, err := Owner{UserID: 42, SessionID: "abc"}.Key()
		require.NoError(t, err)
		assert.Equal(t, "user:42", key)
	})

	t.Run("Session fallback", func(t *testing.T) {
		key, err := Owner{SessionID: " abc "}.Key()
		require.NoError(t, err)
		assert.Equal(t, "session:abc", key)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Owner{SessionID: "  "}.Key()
		assert.ErrorIs(t, err, ErrInvalidOwner)
	})
}

func TestNewCart(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	c := NewCart(Owner{UserID: 7}, "user:7", now)
	require.NotNil(t, c.UserID)
	assert.Equal(t, int64(7), *c.UserID)
	assert.Nil(t, c.SessionID)
	assert.Equal(t, now.Add(7*24*time.Hour), c.ExpiresAt)
	assert.True(t, c.IsEmpty())

	anon := NewCart(Owner{SessionID: "s-1"}, "session:s-1", now)
	assert.Nil(t, anon.UserID)
	require.NotNil(t, anon.SessionID)
	assert.Equal(t, "s-1", *anon.SessionID)
}

func TestCart_Add(t *testing.T) {
	now := time.Now()

	t.Run("Merges same key", func(t *testing.T) {
		c := NewCart(Owner{UserID: 1}, "user:1", now)
		c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 2, UnitPrice: 10000})
		c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 3, UnitPrice: 10000})

		require.Len(t, c.Items, 1)
		assert.Equal(t, 5, c.Items[0].Quantity)
		assert.Equal(t, int64(50000), c.Items[0].Subtotal)
		assertTotals(t, c)
	})

	t.Run("Keeps frozen price on merge", func(t *testing.T) {
		c := NewCart(Owner{UserID: 1}, "user:1", now)
		c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 1, UnitPrice: 10000})
		c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 1, UnitPrice: 8000})

		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(10000), c.Items[0].UnitPrice)
		assert.Equal(t, int64(20000), c.TotalPrice)
	})

	t.Run("Different variant is a new line", func(t *testing.T) {
		c := NewCart(Owner{UserID: 1}, "user:1", now)
		c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 1, UnitPrice: 100})
		c.Add(Line{ProductID: 1, Size: "L", Color: "Black", Quantity: 1, UnitPrice: 100})
		c.Add(Line{ProductID: 1, Size: "M", Color: "White", Quantity: 1, UnitPrice: 100})
		c.Add(Line{ProductID: 2, Size: "M", Color: "Black", Quantity: 4, UnitPrice: 250})

		assert.Len(t, c.Items, 4)
		assert.Equal(t, 7, c.TotalItems)
		assert.Equal(t, int64(1300), c.TotalPrice)
		assertTotals(t, c)
	})

	t.Run("Rejects quantity outside bounds", func(t *testing.T) {
		c := NewCart(Owner{UserID: 1}, "user:1", now)
		assert.ErrorIs(t, c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 0, UnitPrice: 100}), ErrInvalidQuantity)
		assert.ErrorIs(t, c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: MaxLineQuantity + 1, UnitPrice: 100}), ErrInvalidQuantity)
		assert.ErrorIs(t, c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: math.MaxInt64, UnitPrice: 100}), ErrInvalidQuantity)
		assert.True(t, c.IsEmpty())
		assert.Equal(t, int64(0), c.TotalPrice)
	})

	t.Run("Merge over cap leaves line unchanged", func(t *testing.T) {
		c := NewCart(Owner{UserID: 1}, "user:1", now)
		require.NoError(t, c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: MaxLineQuantity - 1, UnitPrice: 10000}))

		err := c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 2, UnitPrice: 10000})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		require.Len(t, c.Items, 1)
		assert.Equal(t, MaxLineQuantity-1, c.Items[0].Quantity)
		assertTotals(t, c)

		require.NoError(t, c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 1, UnitPrice: 10000}))
		assert.Equal(t, MaxLineQuantity, c.TotalItems)
		assert.Equal(t, int64(MaxLineQuantity)*10000, c.TotalPrice)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	newCart := func() *Cart {
		c := NewCart(Owner{UserID: 1}, "user:1", time.Now())
		c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 2, UnitPrice: 10000})
		c.Add(Line{ProductID: 2, Size: "L", Color: "White", Quantity: 1, UnitPrice: 90000})
		return c
	}

	t.Run("Sets quantity", func(t *testing.T) {
		c := newCart()
		require.NoError(t, c.SetQuantity(LineKey{ProductID: 1, Size: "M", Color: "Black"}, 5))
		assert.Equal(t, 6, c.TotalItems)
		assert.Equal(t, int64(140000), c.TotalPrice)
		assertTotals(t, c)
	})

	t.Run("Zero removes line", func(t *testing.T) {
		c := newCart()
		require.NoError(t, c.SetQuantity(LineKey{ProductID: 2, Size: "L", Color: "White"}, 0))
		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(1), c.Items[0].ProductID)
		assertTotals(t, c)
	})

	t.Run("Removing last line zeroes totals", func(t *testing.T) {
		c := newCart()
		require.NoError(t, c.SetQuantity(LineKey{ProductID: 1, Size: "M", Color: "Black"}, 0))
		require.NoError(t, c.SetQuantity(LineKey{ProductID: 2, Size: "L", Color: "White"}, -3))
		assert.True(t, c.IsEmpty())
		assert.Equal(t, 0, c.TotalItems)
		assert.Equal(t, int64(0), c.TotalPrice)
	})

	t.Run("Unknown key", func(t *testing.T) {
		c := newCart()
		err := c.SetQuantity(LineKey{ProductID: 1, Size: "XL", Color: "Black"}, 1)
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.Equal(t, 3, c.TotalItems)
	})

	t.Run("Over cap", func(t *testing.T) {
		c := newCart()
		err := c.SetQuantity(LineKey{ProductID: 1, Size: "M", Color: "Black"}, MaxLineQuantity+1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assertTotals(t, c)
	})
}

func TestCart_Clear(t *testing.T) {
	c := NewCart(Owner{UserID: 1}, "user:1", time.Now())
	c.Add(Line{ProductID: 1, Size: "M", Color: "Black", Quantity: 2, UnitPrice: 10000})
	expires := c.ExpiresAt

	c.Clear()

	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Equal(t, int64(0), c.TotalPrice)
	assert.Equal(t, expires, c.ExpiresAt)
}

func TestCart_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCart(Owner{UserID: 1}, "user:1", now)

	assert.False(t, c.Expired(now.Add(RetentionPeriod)))
	assert.True(t, c.Expired(now.Add(RetentionPeriod+time.Second)))
}

func TestQuoteFor(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		fee   int64
		pay   int64
	}{
		{"Empty", 0, 5000, 5000},
		{"Just below threshold", 99999, 5000, 104999},
		{"At threshold", 100000, 0, 100000},
		{"Above threshold", 120000, 0, 120000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteFor(tt.total)
			assert.Equal(t, tt.total, q.ItemsTotal)
			assert.Equal(t, tt.fee, q.DeliveryFee)
			assert.Equal(t, tt.pay, q.Payable)
		})
	}
}
