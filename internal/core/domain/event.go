package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// A CartEvent is the analytics record of a cart mutation.
type CartEvent struct {
	UserID     string
	Action     CartAction
	ProductID  string
	Size       string
	Color      string
	Quantity   int
	TotalItems int
	TotalPrice decimal.Decimal
	OccurredAt time.Time
}

// A SearchEvent is the analytics record of a catalog search.
type SearchEvent struct {
	UserID     string
	Query      string
	Category   string
	Sort       SortKey
	Results    int
	OccurredAt time.Time
}
