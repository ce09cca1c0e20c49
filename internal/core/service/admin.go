package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var (
	ErrForbidden     = errors.New("admin rights required")
	ErrOrderNotFound = errors.New("order not found")
)

var (
	_ port.ProductEditor = (*Admin)(nil)
	_ port.OrderManager  = (*Admin)(nil)
)

// An Admin serves the back office operations of administrators.
//
// Product saves are validated and answered after a simulated delay but
// never reach the catalog. Order statuses live in memory only.
type Admin struct {
	auth    port.Authenticator
	catalog port.CatalogReader
	delay   time.Duration

	mu     sync.Mutex
	orders []domain.OrderSummary
}

func NewAdmin(
	auth port.Authenticator,
	catalog port.CatalogReader,
	orders []domain.OrderSummary,
	delay time.Duration,
) *Admin {
	return &Admin{
		auth:    auth,
		catalog: catalog,
		delay:   delay,
		orders:  slices.Clone(orders),
	}
}

func (a *Admin) CreateProduct(
	ctx context.Context, d domain.ProductDraft,
) (domain.Product, error) {
	const op = "Admin.CreateProduct"

	if err := a.authorize(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := a.validate(d); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := simulateLatency(ctx, a.delay); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p := d.Product(uuid.NewString())
	slog.Info("product created", "op", op, "productID", p.ID, "slug", p.Slug)
	return p, nil
}

func (a *Admin) UpdateProduct(
	ctx context.Context, id string, d domain.ProductDraft,
) (domain.Product, error) {
	const op = "Admin.UpdateProduct"

	if err := a.authorize(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := a.catalog.ProductByID(id); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := a.validate(d); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := simulateLatency(ctx, a.delay); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p := d.Product(id)
	slog.Info("product updated", "op", op, "productID", p.ID, "slug", p.Slug)
	return p, nil
}

// Orders returns the orders whose id, customer or email contains query,
// case-insensitively. Empty status matches any status.
func (a *Admin) Orders(
	query string, status domain.OrderStatus,
) ([]domain.OrderSummary, error) {
	const op = "Admin.Orders"

	if err := a.authorize(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = strings.ToLower(strings.TrimSpace(query))

	a.mu.Lock()
	defer a.mu.Unlock()

	result := make([]domain.OrderSummary, 0, len(a.orders))
	for _, o := range a.orders {
		if status != "" && o.Status != status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(o.ID), query) &&
			!strings.Contains(strings.ToLower(o.Customer), query) &&
			!strings.Contains(strings.ToLower(o.Email), query) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (a *Admin) UpdateOrderStatus(
	id string, status domain.OrderStatus,
) (domain.OrderSummary, error) {
	const op = "Admin.UpdateOrderStatus"

	if err := a.authorize(); err != nil {
		return domain.OrderSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i := slices.IndexFunc(a.orders, func(o domain.OrderSummary) bool {
		return o.ID == id
	})
	if i == -1 {
		return domain.OrderSummary{}, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
	}
	a.orders[i].Status = status

	slog.Info("order status updated", "op", op, "orderID", id, "status", status)
	return a.orders[i], nil
}

func (a *Admin) authorize() error {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return ErrNotLoggedIn
	}
	if !u.IsAdmin {
		return ErrForbidden
	}
	return nil
}

func (a *Admin) validate(d domain.ProductDraft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	known := slices.ContainsFunc(a.catalog.Categories(), func(c domain.Category) bool {
		return c.ID == d.Category
	})
	if !known {
		return domain.ErrUnknownCategory
	}
	return nil
}
