package domain

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingProductFields = errors.New("name, description, price and category are required")
	ErrMissingSizes         = errors.New("at least one size is required")
	ErrMissingColors        = errors.New("at least one color is required")
	ErrUnknownCategory      = errors.New("unknown category")
)

var (
	slugStripRe = regexp.MustCompile(`[^a-z0-9 ]`)
	slugSpaceRe = regexp.MustCompile(`\s+`)
)

// GenerateSlug lowercases name, drops everything except latin letters,
// digits and spaces, and joins the words with hyphens.
func GenerateSlug(name string) string {
	s := slugStripRe.ReplaceAllString(strings.ToLower(name), "")
	return slugSpaceRe.ReplaceAllString(s, "-")
}

// A ProductDraft is the admin input for creating or editing a product.
type ProductDraft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Sizes       []string
	Colors      []string
	InStock     bool
}

// Validate reports the first missing required field. A zero price
// counts as missing.
func (d ProductDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" ||
		strings.TrimSpace(d.Description) == "" ||
		!d.Price.IsPositive() ||
		d.Category == "" {
		return ErrMissingProductFields
	}
	if len(d.Sizes) == 0 {
		return ErrMissingSizes
	}
	if len(d.Colors) == 0 {
		return ErrMissingColors
	}
	return nil
}

// Product builds the product with the given id and a slug derived
// from the draft name.
func (d ProductDraft) Product(id string) Product {
	return Product{
		ID:          id,
		Name:        strings.TrimSpace(d.Name),
		Slug:        GenerateSlug(strings.TrimSpace(d.Name)),
		Description: d.Description,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		Category:    d.Category,
		Sizes:       slices.Clone(d.Sizes),
		Colors:      slices.Clone(d.Colors),
		InStock:     d.InStock,
	}
}

