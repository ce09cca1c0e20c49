package httphandler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutRoute(t *testing.T) {
	s := newTestServer(t)
	req := CheckoutRequest{ShippingAddress: Address{
		FullName:      "John Doe",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "62701",
		Country:       "US",
		Phone:         "5551234567",
	}}

	t.Run("Unauthorized", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/checkout", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	_, err := s.auth.Login(context.Background(), "user@example.com", "password")
	require.NoError(t, err)

	t.Run("EmptyCart", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/checkout", req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/v1/cart/items",
		AddItemRequest{ProductID: "5", Quantity: 2, Size: "One Size", Color: "Brown"}).Code)

	t.Run("InvalidPhone", func(t *testing.T) {
		bad := req
		bad.ShippingAddress.Phone = "12345"
		rec := s.do(t, http.MethodPost, "/v1/checkout", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("IncompleteAddress", func(t *testing.T) {
		bad := req
		bad.ShippingAddress.City = " "
		rec := s.do(t, http.MethodPost, "/v1/checkout", bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 2, s.cart.TotalItems())
	})

	t.Run("Created", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/checkout", req)
		require.Equal(t, http.StatusCreated, rec.Code)

		order := decode[Order](t, rec)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "123", order.UserID)
		assert.Equal(t, "pending", order.Status)
		assert.Equal(t, "cash_on_delivery", order.PaymentMethod)
		assert.True(t, decimal.RequireFromString("179.98").Equal(order.Total))
		assert.Equal(t, req.ShippingAddress, order.ShippingAddress)
		require.Len(t, order.Items, 1)

		assert.Zero(t, s.cart.TotalItems())
	})
}
