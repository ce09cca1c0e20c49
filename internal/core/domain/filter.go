package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AllCategories disables the category stage of the catalog filter.
const AllCategories = "all"

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
)

// ParseSortKey parses s into a [SortKey].
//
// Empty string is [SortDefault]. "price-low" and "price-high" are
// accepted as aliases of the price keys.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortDefault, nil
	case SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return k, nil
	case "price-low":
		return SortPriceAsc, nil
	case "price-high":
		return SortPriceDesc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// A PriceRange is inclusive on both ends.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

type FilterCriteria struct {
	Query      string
	Category   string
	PriceRange PriceRange
	Sort       SortKey
}

// DefaultCriteria returns criteria that keep every product priced
// up to maxPrice in catalog order.
func DefaultCriteria(maxPrice decimal.Decimal) FilterCriteria {
	return FilterCriteria{
		Category:   AllCategories,
		PriceRange: PriceRange{Min: decimal.Zero, Max: maxPrice},
		Sort:       SortDefault,
	}
}
