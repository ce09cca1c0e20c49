package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var ErrProductNotFound = errors.New("product not found")

var (
	_ port.CatalogReader   = (*Catalog)(nil)
	_ port.CatalogSearcher = (*Catalog)(nil)
)

// A Catalog serves the read-only product reference data.
type Catalog struct {
	products   []domain.Product
	categories []domain.Category
	events     port.SearchEventSender
}

func NewCatalog(
	products []domain.Product,
	categories []domain.Category,
	events port.SearchEventSender,
) Catalog {
	return Catalog{
		products:   domain.CloneProducts(products),
		categories: slices.Clone(categories),
		events:     events,
	}
}

func (c Catalog) Products() []domain.Product {
	return domain.CloneProducts(c.products)
}

func (c Catalog) Categories() []domain.Category {
	return slices.Clone(c.categories)
}

func (c Catalog) ProductBySlug(slug string) (domain.Product, error) {
	const op = "Catalog.ProductBySlug"
	i := slices.IndexFunc(c.products, func(p domain.Product) bool {
		return p.Slug == slug
	})
	if i == -1 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	return c.products[i].Clone(), nil
}

func (c Catalog) ProductByID(id string) (domain.Product, error) {
	const op = "Catalog.ProductByID"
	i := slices.IndexFunc(c.products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i == -1 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	return c.products[i].Clone(), nil
}

// RelatedProducts returns up to limit products of the same category,
// excluding p itself, in catalog order.
func (c Catalog) RelatedProducts(p domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		return []domain.Product{}
	}
	related := make([]domain.Product, 0, limit)
	for _, v := range c.products {
		if len(related) == limit {
			break
		}
		if v.Category == p.Category && v.ID != p.ID {
			related = append(related, v.Clone())
		}
	}
	return related
}

// Search filters the catalog and records non-blank queries.
func (c Catalog) Search(
	ctx context.Context, userID string, criteria domain.FilterCriteria,
) []domain.Product {
	const op = "Catalog.Search"

	result := domain.CloneProducts(FilterProducts(c.products, criteria))

	query := strings.TrimSpace(criteria.Query)
	if query == "" || c.events == nil {
		return result
	}

	c.events.SendSearchEvent(domain.SearchEvent{
		UserID:     userID,
		Query:      query,
		Category:   criteria.Category,
		Sort:       criteria.Sort,
		Results:    len(result),
		OccurredAt: time.Now(),
	})
	slog.DebugContext(ctx, "search recorded", "op", op, "query", query)
	return result
}
