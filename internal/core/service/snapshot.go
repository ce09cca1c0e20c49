package service

import (
	"encoding/json"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	CartSnapshotKey    = "cart"
	SessionSnapshotKey = "user"
)

type (
	productSnapshot struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Slug        string          `json:"slug"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		ImageURL    string          `json:"imageUrl"`
		Category    string          `json:"category"`
		Sizes       []string        `json:"sizes"`
		Colors      []string        `json:"colors"`
		InStock     bool            `json:"inStock"`
	}

	cartLineSnapshot struct {
		Product  productSnapshot `json:"product"`
		Quantity int             `json:"quantity"`
		Size     string          `json:"size"`
		Color    string          `json:"color"`
	}

	userSnapshot struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}
)

func encodeCart(c domain.Cart) ([]byte, error) {
	vs := make([]cartLineSnapshot, len(c.Lines))
	for i, l := range c.Lines {
		vs[i] = cartLineSnapshot{
			Product:  toProductSnapshot(l.Product),
			Quantity: l.Quantity,
			Size:     l.Size,
			Color:    l.Color,
		}
	}
	return json.Marshal(vs)
}

// decodeCart accepts prices both as JSON strings and numbers.
func decodeCart(data []byte) (domain.Cart, error) {
	var vs []cartLineSnapshot
	if err := json.Unmarshal(data, &vs); err != nil {
		return domain.Cart{}, err
	}

	var c domain.Cart
	for _, v := range vs {
		c.Lines = append(c.Lines, domain.CartLine{
			Product:  fromProductSnapshot(v.Product),
			Quantity: v.Quantity,
			Size:     v.Size,
			Color:    v.Color,
		})
	}

	if err := c.Validate(); err != nil {
		return domain.Cart{}, err
	}
	return c, nil
}

func toProductSnapshot(p domain.Product) productSnapshot {
	return productSnapshot{
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

func fromProductSnapshot(s productSnapshot) domain.Product {
	return domain.Product{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Price:       s.Price,
		ImageURL:    s.ImageURL,
		Category:    s.Category,
		Sizes:       s.Sizes,
		Colors:      s.Colors,
		InStock:     s.InStock,
	}
}

func encodeUser(u domain.User) ([]byte, error) {
	return json.Marshal(userSnapshot(u))
}

func decodeUser(data []byte) (domain.User, error) {
	var v userSnapshot
	if err := json.Unmarshal(data, &v); err != nil {
		return domain.User{}, err
	}
	if v.ID == "" {
		return domain.User{}, errEmptyUserID
	}
	return domain.User(v), nil
}
