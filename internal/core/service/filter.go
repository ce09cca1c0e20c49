package service

import (
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterProducts narrows and sorts ps by c.
//
// Stages run in order: text match, category, price range, sort.
// The input slice is left untouched; the result is never nil.
func FilterProducts(
	ps []domain.Product, c domain.FilterCriteria,
) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	result := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if query != "" && !matchText(p, query) {
			continue
		}
		if !matchCategory(p, c.Category) {
			continue
		}
		if !c.PriceRange.Contains(p.Price) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, c.Sort)
	return result
}

func matchText(p domain.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery)
}

func matchCategory(p domain.Product, category string) bool {
	return category == "" || category == domain.AllCategories ||
		p.Category == category
}

func sortProducts(ps []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case domain.SortNameAsc:
		cl := newNameCollator()
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cl.CompareString(a.Name, b.Name)
		})
	case domain.SortNameDesc:
		cl := newNameCollator()
		slices.SortStableFunc(ps, func(a, b domain.Product) int {
			return cl.CompareString(b.Name, a.Name)
		})
	}
}

// newNameCollator returns a collator for product names.
//
// Collator is not safe for concurrent use, so every sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.English)
}
