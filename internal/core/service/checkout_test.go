package service

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() domain.Address {
	return domain.Address{
		FullName:      "John Doe",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "62701",
		Country:       "US",
		Phone:         "5551234567",
	}
}

func TestCheckoutPlaceOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	setup := func(t *testing.T, login bool) (Checkout, *CartStore) {
		t.Helper()
		kv := newMemKV()
		auth := NewAuth(ctx, kv, 0)
		if login {
			_, err := auth.Login(ctx, "user@example.com", "password")
			require.NoError(t, err)
		}
		cart := NewCartStore(ctx, kv)
		c := NewCheckout(auth, cart, 0)
		c.now = func() time.Time { return now }
		return c, cart
	}

	t.Run("PlacesOrderAndClearsCart", func(t *testing.T) {
		c, cart := setup(t, true)
		require.NoError(t, cart.AddItem(ctx, testProduct("1", "29.99", "1"), 2, "M", "Red"))
		require.NoError(t, cart.AddItem(ctx, testProduct("2", "59.99", "1"), 1, "S", "Blue"))

		order, err := c.PlaceOrder(ctx, testAddress())
		require.NoError(t, err)

		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "123", order.UserID)
		assert.Len(t, order.Items, 2)
		assert.True(t, price("119.97").Equal(order.Total))
		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Equal(t, testAddress(), order.ShippingAddress)
		assert.Equal(t, now, order.CreatedAt)

		assert.True(t, cart.Cart().Empty())
	})

	t.Run("RequiresLogin", func(t *testing.T) {
		c, cart := setup(t, false)
		require.NoError(t, cart.AddItem(ctx, testProduct("1", "29.99", "1"), 1, "M", "Red"))

		_, err := c.PlaceOrder(ctx, testAddress())
		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.Equal(t, 1, cart.TotalItems())
	})

	t.Run("RequiresItems", func(t *testing.T) {
		c, _ := setup(t, true)
		_, err := c.PlaceOrder(ctx, testAddress())
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		c, cart := setup(t, true)
		require.NoError(t, cart.AddItem(ctx, testProduct("1", "29.99", "1"), 1, "M", "Red"))

		for _, phone := range []string{"", "555123456", "55512345678", "555-123-45"} {
			addr := testAddress()
			addr.Phone = phone
			_, err := c.PlaceOrder(ctx, addr)
			assert.ErrorIs(t, err, ErrInvalidPhone, phone)
		}
		assert.Equal(t, 1, cart.TotalItems())
	})

	t.Run("RequiresAddressFields", func(t *testing.T) {
		c, cart := setup(t, true)
		require.NoError(t, cart.AddItem(ctx, testProduct("1", "29.99", "1"), 1, "M", "Red"))

		blank := []func(*domain.Address){
			func(a *domain.Address) { a.FullName = "" },
			func(a *domain.Address) { a.StreetAddress = "  " },
			func(a *domain.Address) { a.City = "" },
			func(a *domain.Address) { a.State = "" },
			func(a *domain.Address) { a.PostalCode = "\t" },
			func(a *domain.Address) { a.Country = "" },
		}
		for i, f := range blank {
			addr := testAddress()
			f(&addr)
			_, err := c.PlaceOrder(ctx, addr)
			assert.ErrorIs(t, err, domain.ErrIncompleteAddress, i)
		}
		assert.Equal(t, 1, cart.TotalItems())
	})

	t.Run("KeepsLinesChangedDuringDelay", func(t *testing.T) {
		c, cart := setup(t, true)
		c.delay = 100 * time.Millisecond
		p1 := testProduct("1", "29.99", "1")
		p2 := testProduct("2", "59.99", "1")
		require.NoError(t, cart.AddItem(ctx, p1, 2, "M", "Red"))

		type result struct {
			order domain.Order
			err   error
		}
		done := make(chan result, 1)
		go func() {
			order, err := c.PlaceOrder(ctx, testAddress())
			done <- result{order, err}
		}()

		time.Sleep(30 * time.Millisecond)
		require.NoError(t, cart.AddItem(ctx, p2, 1, "S", "Blue"))
		require.NoError(t, cart.AddItem(ctx, p1, 1, "M", "Red"))

		res := <-done
		require.NoError(t, res.err)
		require.Len(t, res.order.Items, 1)
		assert.Equal(t, 2, res.order.Items[0].Quantity)
		assert.True(t, price("59.98").Equal(res.order.Total))

		items := cart.Items()
		require.Len(t, items, 2)
		assert.Equal(t, domain.LineKey{ProductID: "1", Size: "M", Color: "Red"}, items[0].Key())
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, "2", items[1].Product.ID)
	})

	t.Run("CanceledKeepsCart", func(t *testing.T) {
		c, cart := setup(t, true)
		c.delay = time.Minute
		require.NoError(t, cart.AddItem(ctx, testProduct("1", "29.99", "1"), 1, "M", "Red"))

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.PlaceOrder(cctx, testAddress())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, cart.TotalItems())
	})
}
