package order

import (
	"testing"
	"time"

	"ziggler-bot/internal/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusPreparing, true},
		{StatusPreparing, StatusShipping, true},
		{StatusShipping, StatusDelivered, true},
		{StatusShipping, StatusPending, false},
		{StatusShipping, StatusCancelled, true},
		{StatusPending, StatusShipping, false},
		{StatusPending, StatusPending, false},
		{StatusPending, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_DeliveredIsFinal(t *testing.T) {
	for _, to := range []Status{
		StatusPending, StatusConfirmed, StatusPreparing,
		StatusShipping, StatusDelivered, StatusCancelled,
	} {
		assert.False(t, StatusDelivered.CanTransition(to), to)
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" Shipping ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipping, st)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeliveryInfo_Normalize(t *testing.T) {
	t.Run("Courier with defaults", func(t *testing.T) {
		d := DeliveryInfo{Type: " Courier ", Address: " Abay 10 ", Phone: "+77001234567"}
		require.NoError(t, d.Normalize())
		assert.Equal(t, DeliveryCourier, d.Type)
		assert.Equal(t, "Abay 10", d.Address)
		assert.Equal(t, DefaultCity, d.City)
	})

	t.Run("Pickup without address", func(t *testing.T) {
		d := DeliveryInfo{Type: DeliveryPickup, City: "Astana", Phone: "+77001234567"}
		require.NoError(t, d.Normalize())
		assert.Equal(t, "Astana", d.City)
	})

	t.Run("Courier requires address", func(t *testing.T) {
		d := DeliveryInfo{Type: DeliveryCourier, Phone: "+77001234567"}
		assert.ErrorIs(t, d.Normalize(), ErrInvalidDelivery)
	})

	t.Run("Phone required", func(t *testing.T) {
		d := DeliveryInfo{Type: DeliveryPickup}
		assert.ErrorIs(t, d.Normalize(), ErrInvalidDelivery)
	})

	t.Run("Unknown type", func(t *testing.T) {
		d := DeliveryInfo{Type: "drone", Phone: "1"}
		assert.ErrorIs(t, d.Normalize(), ErrInvalidDelivery)
	})
}

func TestNewFromCart(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	delivery := DeliveryInfo{Type: DeliveryPickup, City: DefaultCity, Phone: "1"}

	t.Run("Empty cart", func(t *testing.T) {
		c := cart.NewCart(cart.Owner{UserID: 1}, "user:1", now)
		o, err := NewFromCart(c, 1, "ZG-1", delivery, now)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Nil(t, o)

		_, err = NewFromCart(nil, 1, "ZG-1", delivery, now)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("Snapshots lines and applies delivery fee", func(t *testing.T) {
		c := cart.NewCart(cart.Owner{UserID: 1}, "user:1", now)
		c.Add(cart.Line{ProductID: 1, ProductName: "Tee", Size: "M", Color: "Black", Quantity: 2, UnitPrice: 10000})
		c.Add(cart.Line{ProductID: 2, ProductName: "Cap", Size: "S", Color: "Red", Quantity: 1, UnitPrice: 5000})

		o, err := NewFromCart(c, 1, "ZG-1", delivery, now)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, int64(25000), o.ItemsTotal)
		assert.Equal(t, cart.DeliveryFee, o.DeliveryFee)
		assert.Equal(t, int64(30000), o.TotalPrice)
		require.Len(t, o.Items, 2)
		assert.Equal(t, "Tee", o.Items[0].ProductName)
		assert.Equal(t, int64(10000), o.Items[0].Price)
		assert.Equal(t, int64(20000), o.Items[0].Subtotal)

		// later catalog or cart changes do not reach the order
		c.Items[0].UnitPrice = 1
		c.Items[0].ProductName = "Renamed"
		assert.Equal(t, int64(10000), o.Items[0].Price)
		assert.Equal(t, "Tee", o.Items[0].ProductName)
	})

	t.Run("Free delivery at threshold", func(t *testing.T) {
		c := cart.NewCart(cart.Owner{UserID: 1}, "user:1", now)
		c.Add(cart.Line{ProductID: 1, ProductName: "Coat", Size: "L", Color: "Camel", Quantity: 1, UnitPrice: 100000})

		o, err := NewFromCart(c, 1, "ZG-2", delivery, now)
		require.NoError(t, err)
		assert.Equal(t, int64(0), o.DeliveryFee)
		assert.Equal(t, int64(100000), o.TotalPrice)
	})
}
