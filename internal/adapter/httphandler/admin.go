package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

// POST v1/admin/products JSON {product draft} (201 Created, 400 Bad request, 401 Unauthorized, 403 Forbidden)
// PUT v1/admin/products/{id} JSON {product draft} (200 OK, 400 Bad request, 401 Unauthorized, 403 Forbidden, 404 Not found)
// GET v1/admin/orders?q=&status= (200 OK, 400 Bad request, 401 Unauthorized, 403 Forbidden)
// PATCH v1/admin/orders/{id} JSON {"status"} (200 OK, 400 Bad request, 401 Unauthorized, 403 Forbidden, 404 Not found)

type AdminHandler struct {
	products port.ProductEditor
	orders   port.OrderManager
}

func RegisterAdmin(
	mux *http.ServeMux, products port.ProductEditor, orders port.OrderManager,
) {
	h := AdminHandler{products, orders}
	mux.HandleFunc("POST /v1/admin/products", h.PostProduct)
	mux.HandleFunc("PUT /v1/admin/products/{id}", h.PutProduct)
	mux.HandleFunc("GET /v1/admin/orders", h.GetOrders)
	mux.HandleFunc("PATCH /v1/admin/orders/{id}", h.PatchOrder)
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostProduct"
	log := slog.With("op", op)

	var req ProductDraft
	if !decodeJSON(w, r, log, &req) {
		return
	}

	p, err := h.products.CreateProduct(r.Context(), req.toDomain())
	if err != nil {
		writeAdminError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, fromDomainProduct(p))
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PutProduct"
	log := slog.With("op", op)

	var req ProductDraft
	if !decodeJSON(w, r, log, &req) {
		return
	}

	p, err := h.products.UpdateProduct(r.Context(), r.PathValue("id"), req.toDomain())
	if err != nil {
		writeAdminError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromDomainProduct(p))
}

func (h AdminHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.GetOrders"
	log := slog.With("op", op)

	q := r.URL.Query()
	var status domain.OrderStatus
	if s := q.Get("status"); s != "" && s != "all" {
		var err error
		if status, err = domain.ParseOrderStatus(s); err != nil {
			writeError(w, log, http.StatusBadRequest, err.Error())
			return
		}
	}

	orders, err := h.orders.Orders(q.Get("q"), status)
	if err != nil {
		writeAdminError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromDomainOrderSummaries(orders))
}

func (h AdminHandler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PatchOrder"
	log := slog.With("op", op)

	var req UpdateOrderStatusRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}
	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.UpdateOrderStatus(r.PathValue("id"), status)
	if err != nil {
		writeAdminError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, fromDomainOrderSummary(o))
}

var adminBadRequest = []error{
	domain.ErrMissingProductFields,
	domain.ErrMissingSizes,
	domain.ErrMissingColors,
	domain.ErrUnknownCategory,
}

func writeAdminError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		writeError(w, log, http.StatusUnauthorized, service.ErrNotLoggedIn.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, log, http.StatusForbidden, service.ErrForbidden.Error())
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, log, http.StatusNotFound, service.ErrProductNotFound.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		writeError(w, log, http.StatusNotFound, service.ErrOrderNotFound.Error())
	default:
		for _, target := range adminBadRequest {
			if errors.Is(err, target) {
				writeError(w, log, http.StatusBadRequest, target.Error())
				return
			}
		}
		log.Error("admin operation failed", "err", err)
		writeError(w, log, http.StatusServiceUnavailable, "try again later")
	}
}
