package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

type (
	Product struct {
		ID          string
		Name        string
		Slug        string
		Description string
		Price       decimal.Decimal
		ImageURL    string
		Category    string
		Sizes       []string
		Colors      []string
		InStock     bool
	}

	Category struct {
		ID   string
		Name string
		Slug string
	}
)

// HasSize reports whether size is offered by the product.
//
// A product without sizes accepts any value.
func (p Product) HasSize(size string) bool {
	return len(p.Sizes) == 0 || slices.Contains(p.Sizes, size)
}

// HasColor reports whether color is offered by the product.
//
// A product without colors accepts any value.
func (p Product) HasColor(color string) bool {
	return len(p.Colors) == 0 || slices.Contains(p.Colors, color)
}

// Clone returns a copy of p that does not share its variant slices.
func (p Product) Clone() Product {
	p.Sizes = slices.Clone(p.Sizes)
	p.Colors = slices.Clone(p.Colors)
	return p
}

// CloneProducts returns a deep copy of ps.
func CloneProducts(ps []Product) []Product {
	if ps == nil {
		return nil
	}
	vs := make([]Product, len(ps))
	for i, p := range ps {
		vs[i] = p.Clone()
	}
	return vs
}
