package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST v1/checkout JSON {"shipping_address": {...}} (201 Created, 400 Bad request, 401 Unauthorized, 409 Conflict)

type CheckoutHandler struct {
	placer port.OrderPlacer
}

func RegisterCheckout(mux *http.ServeMux, placer port.OrderPlacer) {
	h := CheckoutHandler{placer}
	mux.HandleFunc("POST /v1/checkout", h.PostCheckout)
}

func (h CheckoutHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PostCheckout"
	log := slog.With("op", op)

	var req CheckoutRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	order, err := h.placer.PlaceOrder(r.Context(), req.ShippingAddress.toDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLoggedIn):
			writeError(w, log, http.StatusUnauthorized, service.ErrNotLoggedIn.Error())
		case errors.Is(err, domain.ErrIncompleteAddress):
			writeError(w, log, http.StatusBadRequest, domain.ErrIncompleteAddress.Error())
		case errors.Is(err, service.ErrInvalidPhone):
			writeError(w, log, http.StatusBadRequest, service.ErrInvalidPhone.Error())
		case errors.Is(err, service.ErrEmptyCart):
			writeError(w, log, http.StatusConflict, service.ErrEmptyCart.Error())
		default:
			log.Error("failed to place order", "err", err)
			writeError(w, log, http.StatusServiceUnavailable,
				"failed to place order, try again")
		}
		return
	}

	log.Info("accepted", "orderID", order.ID, "nItems", len(order.Items))
	writeJSON(w, log, http.StatusCreated, fromDomainOrder(order))
}
