package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Slug        string          `json:"slug"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		ImageURL    string          `json:"image_url"`
		Category    string          `json:"category"`
		Sizes       []string        `json:"sizes"`
		Colors      []string        `json:"colors"`
		InStock     bool            `json:"in_stock"`
	}

	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	ProductDetails struct {
		Product Product   `json:"product"`
		Related []Product `json:"related"`
	}

	ProductList struct {
		Total    int       `json:"total"`
		Products []Product `json:"products"`
	}
)

type (
	CartLine struct {
		Product  Product         `json:"product"`
		Quantity int             `json:"quantity"`
		Size     string          `json:"size"`
		Color    string          `json:"color"`
		Subtotal decimal.Decimal `json:"subtotal"`
	}

	Cart struct {
		Items      []CartLine      `json:"items"`
		TotalItems int             `json:"total_items"`
		TotalPrice decimal.Decimal `json:"total_price"`
	}

	AddItemRequest struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}
)

type (
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	User struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}
)

type (
	Address struct {
		FullName      string `json:"full_name"`
		StreetAddress string `json:"street_address"`
		City          string `json:"city"`
		State         string `json:"state"`
		PostalCode    string `json:"postal_code"`
		Country       string `json:"country"`
		Phone         string `json:"phone"`
	}

	CheckoutRequest struct {
		ShippingAddress Address `json:"shipping_address"`
	}

	Order struct {
		ID              string          `json:"id"`
		UserID          string          `json:"user_id"`
		Items           []CartLine      `json:"items"`
		Total           decimal.Decimal `json:"total"`
		Status          string          `json:"status"`
		PaymentMethod   string          `json:"payment_method"`
		ShippingAddress Address         `json:"shipping_address"`
		CreatedAt       time.Time       `json:"created_at"`
	}
)

type (
	ProductDraft struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		ImageURL    string          `json:"image_url"`
		Category    string          `json:"category"`
		Sizes       []string        `json:"sizes"`
		Colors      []string        `json:"colors"`
		InStock     bool            `json:"in_stock"`
	}

	OrderSummary struct {
		ID       string          `json:"id"`
		Customer string          `json:"customer"`
		Email    string          `json:"email"`
		Date     string          `json:"date"`
		Items    int             `json:"items"`
		Total    decimal.Decimal `json:"total"`
		Status   string          `json:"status"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status"`
	}
)

type ErrorResponse struct {
	Error string `json:"error"`
}

const cashOnDelivery = "cash_on_delivery"

func fromDomainProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		InStock:     p.InStock,
	}
}

func fromDomainProducts(ps []domain.Product) []Product {
	vs := make([]Product, len(ps))
	for i, p := range ps {
		vs[i] = fromDomainProduct(p)
	}
	return vs
}

func fromDomainCategories(cs []domain.Category) []Category {
	vs := make([]Category, len(cs))
	for i, c := range cs {
		vs[i] = Category(c)
	}
	return vs
}

func fromDomainLines(ls []domain.CartLine) []CartLine {
	vs := make([]CartLine, len(ls))
	for i, l := range ls {
		vs[i] = CartLine{
			Product:  fromDomainProduct(l.Product),
			Quantity: l.Quantity,
			Size:     l.Size,
			Color:    l.Color,
			Subtotal: l.Subtotal(),
		}
	}
	return vs
}

func fromDomainCart(c domain.Cart) Cart {
	return Cart{
		Items:      fromDomainLines(c.Lines),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}

func fromDomainUser(u domain.User) User {
	return User(u)
}

func (a Address) toDomain() domain.Address {
	return domain.Address(a)
}

func fromDomainOrder(o domain.Order) Order {
	return Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           fromDomainLines(o.Items),
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentMethod:   cashOnDelivery,
		ShippingAddress: Address(o.ShippingAddress),
		CreatedAt:       o.CreatedAt,
	}
}

func (d ProductDraft) toDomain() domain.ProductDraft {
	return domain.ProductDraft(d)
}

func fromDomainOrderSummary(o domain.OrderSummary) OrderSummary {
	return OrderSummary{
		ID:       o.ID,
		Customer: o.Customer,
		Email:    o.Email,
		Date:     o.Date.Format(time.DateOnly),
		Items:    o.Items,
		Total:    o.Total,
		Status:   string(o.Status),
	}
}

func fromDomainOrderSummaries(orders []domain.OrderSummary) []OrderSummary {
	vs := make([]OrderSummary, len(orders))
	for i, o := range orders {
		vs[i] = fromDomainOrderSummary(o)
	}
	return vs
}
