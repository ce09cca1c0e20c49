package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"product_id", "quantity", "size", "color"} (200 OK, 400 Bad request, 404 Not found)
// PATCH v1/cart/items/{productID}?size=&color= JSON {"quantity"} (200 OK, 400 Bad request)
// DELETE v1/cart/items/{productID}?size=&color= (200 OK)
// DELETE v1/cart (200 OK)
//
// Without size and color the item routes act on every variant of the product.

type CartHandler struct {
	cart    port.CartStore
	catalog port.CatalogReader
}

func RegisterCart(
	mux *http.ServeMux, cart port.CartStore, catalog port.CatalogReader,
) {
	h := CartHandler{cart, catalog}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{productID}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	writeJSON(w, log, http.StatusOK, fromDomainCart(h.cart.Cart()))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	p, err := h.catalog.ProductByID(req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, log, http.StatusNotFound, "product not found")
			return
		}
		log.Error("failed to get product", "err", err)
		writeError(w, log, http.StatusInternalServerError, "internal error")
		return
	}

	err = h.cart.AddItem(r.Context(), p, req.Quantity, req.Size, req.Color)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity),
			errors.Is(err, domain.ErrInvalidVariant):
			writeError(w, log, http.StatusBadRequest, errors.Unwrap(err).Error())
		default:
			log.Error("failed to add item", "err", err)
			writeError(w, log, http.StatusInternalServerError, "internal error")
		}
		return
	}

	log.Info("item added", "productID", p.ID, "quantity", req.Quantity)
	writeJSON(w, log, http.StatusOK, fromDomainCart(h.cart.Cart()))
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var req UpdateQuantityRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	productID := r.PathValue("productID")
	if k, ok := lineKey(r, productID); ok {
		h.cart.UpdateLineQuantity(r.Context(), k, req.Quantity)
	} else {
		h.cart.UpdateQuantity(r.Context(), productID, req.Quantity)
	}

	writeJSON(w, log, http.StatusOK, fromDomainCart(h.cart.Cart()))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteItem"
	log := slog.With("op", op)

	productID := r.PathValue("productID")
	if k, ok := lineKey(r, productID); ok {
		h.cart.RemoveLine(r.Context(), k)
	} else {
		h.cart.RemoveItem(r.Context(), productID)
	}

	writeJSON(w, log, http.StatusOK, fromDomainCart(h.cart.Cart()))
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.DeleteCart"
	log := slog.With("op", op)

	h.cart.Clear(r.Context())
	writeJSON(w, log, http.StatusOK, fromDomainCart(h.cart.Cart()))
}

// lineKey reports false unless both size and color are in the query.
func lineKey(r *http.Request, productID string) (domain.LineKey, bool) {
	q := r.URL.Query()
	if !q.Has("size") || !q.Has("color") {
		return domain.LineKey{}, false
	}
	return domain.LineKey{
		ProductID: productID,
		Size:      q.Get("size"),
		Color:     q.Get("color"),
	}, true
}
