package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	runnerContext interface {
		Run(context.Context)
	}

	closer interface {
		Close()
	}
)

// A KeyValueStore is a durable key-value slot storage.
//
// Get returns nil value and nil error for an absent key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type CartListener func(domain.CartChange)

type CartStore interface {
	AddItem(ctx context.Context, p domain.Product, quantity int, size, color string) error
	RemoveItem(ctx context.Context, productID string)
	RemoveLine(ctx context.Context, k domain.LineKey)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	UpdateLineQuantity(ctx context.Context, k domain.LineKey, quantity int)
	Clear(ctx context.Context)
	Deduct(ctx context.Context, ordered []domain.CartLine)
	Cart() domain.Cart
	TotalItems() int
	TotalPrice() decimal.Decimal
	Subscribe(CartListener) (unsubscribe func())
}

type CatalogReader interface {
	Products() []domain.Product
	Categories() []domain.Category
	ProductBySlug(slug string) (domain.Product, error)
	ProductByID(id string) (domain.Product, error)
	RelatedProducts(p domain.Product, limit int) []domain.Product
}

type CatalogSearcher interface {
	Search(ctx context.Context, userID string, c domain.FilterCriteria) []domain.Product
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	AdminLogin(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Logout(ctx context.Context)
	CurrentUser() (domain.User, bool)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, addr domain.Address) (domain.Order, error)
}

type ProductEditor interface {
	CreateProduct(ctx context.Context, d domain.ProductDraft) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, d domain.ProductDraft) (domain.Product, error)
}

type OrderManager interface {
	Orders(query string, status domain.OrderStatus) ([]domain.OrderSummary, error)
	UpdateOrderStatus(id string, status domain.OrderStatus) (domain.OrderSummary, error)
}

type EventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
	ProduceSearchEvent(context.Context, domain.SearchEvent) error
}

type SearchEventSender interface {
	SendSearchEvent(domain.SearchEvent)
}

type EventRelay interface {
	SearchEventSender
	runnerContext
	closer
}
