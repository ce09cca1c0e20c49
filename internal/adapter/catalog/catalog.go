// Package catalog holds the static storefront reference data.
package catalog

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

const imageParams = "?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80"

func Categories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Men's Clothing", Slug: "mens-clothing"},
		{ID: "2", Name: "Women's Clothing", Slug: "womens-clothing"},
		{ID: "3", Name: "Accessories", Slug: "accessories"},
		{ID: "4", Name: "Footwear", Slug: "footwear"},
	}
}

func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Classic White T-Shirt",
			Slug:        "classic-white-t-shirt",
			Description: "A timeless classic white t-shirt made from 100% organic cotton for everyday comfort.",
			Price:       price("29.99"),
			ImageURL:    unsplash("photo-1521572163474-6864f9cf17ab"),
			Category:    "1",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"White", "Black", "Gray"},
			InStock:     true,
		},
		{
			ID:          "2",
			Name:        "Slim Fit Jeans",
			Slug:        "slim-fit-jeans",
			Description: "Modern slim fit jeans with a comfortable stretch fabric for the perfect fit.",
			Price:       price("59.99"),
			ImageURL:    unsplash("photo-1542272604-787c3835535d"),
			Category:    "1",
			Sizes:       []string{"30", "32", "34", "36"},
			Colors:      []string{"Blue", "Black", "Gray"},
			InStock:     true,
		},
		{
			ID:          "3",
			Name:        "Summer Floral Dress",
			Slug:        "summer-floral-dress",
			Description: "Light and airy floral dress perfect for summer days and evenings.",
			Price:       price("49.99"),
			ImageURL:    unsplash("photo-1612336307429-8a898d10e223"),
			Category:    "2",
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Blue Floral", "Pink Floral"},
			InStock:     true,
		},
		{
			ID:          "4",
			Name:        "High-Waisted Leggings",
			Slug:        "high-waisted-leggings",
			Description: "Comfortable high-waisted leggings perfect for workouts or casual wear.",
			Price:       price("34.99"),
			ImageURL:    unsplash("photo-1506629082955-511b1aa562c8"),
			Category:    "2",
			Sizes:       []string{"XS", "S", "M", "L", "XL"},
			Colors:      []string{"Black", "Navy", "Gray"},
			InStock:     true,
		},
		{
			ID:          "5",
			Name:        "Leather Watch",
			Slug:        "leather-watch",
			Description: "Classic design watch with genuine leather strap and reliable Japanese movement.",
			Price:       price("89.99"),
			ImageURL:    unsplash("photo-1522312346375-d1a52e2b99b3"),
			Category:    "3",
			Sizes:       []string{"One Size"},
			Colors:      []string{"Brown", "Black"},
			InStock:     true,
		},
		{
			ID:          "6",
			Name:        "Canvas Sneakers",
			Slug:        "canvas-sneakers",
			Description: "Versatile canvas sneakers that go with any casual outfit.",
			Price:       price("44.99"),
			ImageURL:    unsplash("photo-1525966222134-fcfa99b8ae77"),
			Category:    "4",
			Sizes:       []string{"7", "8", "9", "10", "11"},
			Colors:      []string{"White", "Black", "Navy"},
			InStock:     true,
		},
		{
			ID:          "7",
			Name:        "Wool Beanie",
			Slug:        "wool-beanie",
			Description: "Soft and warm wool beanie for cold winter days.",
			Price:       price("24.99"),
			ImageURL:    unsplash("photo-1576871337632-b9aef4c17ab9"),
			Category:    "3",
			Sizes:       []string{"One Size"},
			Colors:      []string{"Gray", "Black", "Navy"},
			InStock:     true,
		},
		{
			ID:          "8",
			Name:        "Denim Jacket",
			Slug:        "denim-jacket",
			Description: "Classic denim jacket with a modern fit, perfect for layering in any season.",
			Price:       price("79.99"),
			ImageURL:    unsplash("photo-1591047139829-d91aecb6caea"),
			Category:    "1",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Blue", "Light Blue"},
			InStock:     true,
		},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + imageParams
}
