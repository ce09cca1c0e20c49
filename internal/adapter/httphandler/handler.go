package httphandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
)

// GET v1/products?q=&category=&min_price=&max_price=&sort= (200 OK, 400 Bad request)
// GET v1/products/{slug} (200 OK, 404 Not found)
// GET v1/categories (200 OK)

const relatedProductsLimit = 4

type ProductsHandler struct {
	catalog  port.CatalogReader
	searcher port.CatalogSearcher
	auth     port.Authenticator
	maxPrice decimal.Decimal
}

// RegisterProducts registers catalog routes.
//
// maxPrice is the upper price bound when the request has none.
func RegisterProducts(
	mux *http.ServeMux,
	catalog port.CatalogReader,
	searcher port.CatalogSearcher,
	auth port.Authenticator,
	maxPrice decimal.Decimal,
) {
	h := ProductsHandler{catalog, searcher, auth, maxPrice}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	criteria, err := h.parseCriteria(r.URL.Query())
	if err != nil {
		log.Warn("invalid criteria", "err", err)
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}

	var userID string
	if u, ok := h.auth.CurrentUser(); ok {
		userID = u.ID
	}

	ps := h.searcher.Search(r.Context(), userID, criteria)
	writeJSON(w, log, http.StatusOK, ProductList{
		Total:    len(ps),
		Products: fromDomainProducts(ps),
	})
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	p, err := h.catalog.ProductBySlug(r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeError(w, log, http.StatusNotFound, "product not found")
			return
		}
		log.Error("failed to get product", "err", err)
		writeError(w, log, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, log, http.StatusOK, ProductDetails{
		Product: fromDomainProduct(p),
		Related: fromDomainProducts(
			h.catalog.RelatedProducts(p, relatedProductsLimit),
		),
	})
}

func (h ProductsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetCategories"
	log := slog.With("op", op)

	writeJSON(w, log, http.StatusOK, fromDomainCategories(h.catalog.Categories()))
}

func (h ProductsHandler) parseCriteria(q url.Values) (domain.FilterCriteria, error) {
	c := domain.DefaultCriteria(h.maxPrice)
	c.Query = q.Get("q")

	if category := strings.TrimSpace(q.Get("category")); category != "" {
		c.Category = category
	}

	var err error
	if c.PriceRange.Min, err = parsePrice(q, "min_price", c.PriceRange.Min); err != nil {
		return domain.FilterCriteria{}, err
	}
	if c.PriceRange.Max, err = parsePrice(q, "max_price", c.PriceRange.Max); err != nil {
		return domain.FilterCriteria{}, err
	}

	if c.Sort, err = domain.ParseSortKey(q.Get("sort")); err != nil {
		return domain.FilterCriteria{}, err
	}
	return c, nil
}

var errInvalidPrice = errors.New("invalid price")

func parsePrice(
	q url.Values, name string, def decimal.Decimal,
) (decimal.Decimal, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return def, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s=%q", errInvalidPrice, name, s)
	}
	return v, nil
}
