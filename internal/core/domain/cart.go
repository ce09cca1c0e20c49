package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidVariant  = errors.New("size or color is not offered")
	ErrDuplicateLine   = errors.New("duplicate cart line")
	ErrEmptyProductID  = errors.New("empty product id")
)

// A LineKey identifies a cart line.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

type CartLine struct {
	Product  Product
	Quantity int
	Size     string
	Color    string
}

func (l CartLine) Key() LineKey {
	return LineKey{l.Product.ID, l.Size, l.Color}
}

// Subtotal returns price multiplied by quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// A Cart is an ordered list of lines, insertion order is display order.
type Cart struct {
	Lines []CartLine
}

func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c Cart) TotalItems() (n int) {
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return
}

func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Index returns position of the line with key k or -1.
func (c Cart) Index(k LineKey) int {
	for i, l := range c.Lines {
		if l.Key() == k {
			return i
		}
	}
	return -1
}

// Validate checks the cart invariants: every line has a product id,
// a quantity of at least one and a unique key.
func (c Cart) Validate() error {
	seen := make(map[LineKey]struct{}, len(c.Lines))
	for _, l := range c.Lines {
		if l.Product.ID == "" {
			return ErrEmptyProductID
		}
		if l.Quantity < 1 {
			return ErrInvalidQuantity
		}
		k := l.Key()
		if _, ok := seen[k]; ok {
			return ErrDuplicateLine
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the cart.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]CartLine, len(c.Lines))
	for i, l := range c.Lines {
		l.Product = l.Product.Clone()
		lines[i] = l
	}
	return Cart{Lines: lines}
}

type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionUpdate CartAction = "update"
	CartActionRemove CartAction = "remove"
	CartActionClear  CartAction = "clear"

	// CartActionCheckout deducts ordered lines from the cart.
	CartActionCheckout CartAction = "checkout"
)

// A CartChange describes a committed cart mutation.
type CartChange struct {
	Action    CartAction
	ProductID string
	Size      string
	Color     string
	Quantity  int
	Cart      Cart
}
