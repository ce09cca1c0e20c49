package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
	}{
		{"", SortDefault},
		{"default", SortDefault},
		{"price-asc", SortPriceAsc},
		{" PRICE-DESC ", SortPriceDesc},
		{"name-asc", SortNameAsc},
		{"name-desc", SortNameDesc},
		{"price-low", SortPriceAsc},
		{"price-high", SortPriceDesc},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSortKey("popular")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestPriceRangeContains(t *testing.T) {
	r := PriceRange{Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(20)}
	assert.True(t, r.Contains(decimal.NewFromInt(10)))
	assert.True(t, r.Contains(decimal.RequireFromString("19.99")))
	assert.True(t, r.Contains(decimal.NewFromInt(20)))
	assert.False(t, r.Contains(decimal.RequireFromString("9.99")))
	assert.False(t, r.Contains(decimal.RequireFromString("20.01")))
}

func TestCartValidate(t *testing.T) {
	p := Product{ID: "1", Price: decimal.NewFromInt(5)}

	valid := Cart{Lines: []CartLine{
		{Product: p, Quantity: 1, Size: "M"},
		{Product: p, Quantity: 2, Size: "L"},
	}}
	assert.NoError(t, valid.Validate())
	assert.Equal(t, 3, valid.TotalItems())
	assert.True(t, decimal.NewFromInt(15).Equal(valid.TotalPrice()))
	assert.Equal(t, 1, valid.Index(LineKey{ProductID: "1", Size: "L"}))
	assert.Equal(t, -1, valid.Index(LineKey{ProductID: "1", Size: "S"}))

	dup := Cart{Lines: []CartLine{
		{Product: p, Quantity: 1, Size: "M"},
		{Product: p, Quantity: 1, Size: "M"},
	}}
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateLine)

	zero := Cart{Lines: []CartLine{{Product: p}}}
	assert.ErrorIs(t, zero.Validate(), ErrInvalidQuantity)

	noID := Cart{Lines: []CartLine{{Quantity: 1}}}
	assert.ErrorIs(t, noID.Validate(), ErrEmptyProductID)
}

func TestProductVariants(t *testing.T) {
	p := Product{Sizes: []string{"M"}, Colors: []string{"Red"}}
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("L"))
	assert.True(t, p.HasColor("Red"))
	assert.False(t, p.HasColor("Blue"))

	var open Product
	assert.True(t, open.HasSize("XL"))
	assert.True(t, open.HasColor(""))
}

func TestCartCloneIsDeep(t *testing.T) {
	c := Cart{Lines: []CartLine{{
		Product:  Product{ID: "1", Sizes: []string{"M"}, Colors: []string{"Red"}},
		Quantity: 1,
	}}}

	clone := c.Clone()
	clone.Lines[0].Quantity = 5
	clone.Lines[0].Product.Sizes[0] = "XL"
	clone.Lines[0].Product.Colors[0] = "Blue"

	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, []string{"M"}, c.Lines[0].Product.Sizes)
	assert.Equal(t, []string{"Red"}, c.Lines[0].Product.Colors)
	assert.Nil(t, Cart{}.Clone().Lines)
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Classic White Tee", "classic-white-tee"},
		{"Men's Leather  Boots", "mens-leather-boots"},
		{"T-Shirt 2.0!", "tshirt-20"},
		{"Ünïcode Café", "ncode-caf"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GenerateSlug(tt.in), tt.in)
	}
}

func TestProductDraft(t *testing.T) {
	d := ProductDraft{
		Name:        " Wool Scarf ",
		Description: "Warm.",
		Price:       decimal.RequireFromString("19.99"),
		Category:    "3",
		Sizes:       []string{"One Size"},
		Colors:      []string{"Gray"},
	}
	require.NoError(t, d.Validate())

	p := d.Product("42")
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, "Wool Scarf", p.Name)
	assert.Equal(t, "wool-scarf", p.Slug)

	d.Sizes[0] = "XL"
	assert.Equal(t, []string{"One Size"}, p.Sizes)

	d.Price = decimal.RequireFromString("-1")
	assert.ErrorIs(t, d.Validate(), ErrMissingProductFields)
}

func TestAddressValidate(t *testing.T) {
	a := Address{
		FullName:      "John Doe",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		State:         "IL",
		PostalCode:    "62701",
		Country:       "US",
	}
	assert.NoError(t, a.Validate())

	a.Country = "  "
	assert.ErrorIs(t, a.Validate(), ErrIncompleteAddress)
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, OrderShipped, s)

	_, err = ParseOrderStatus("lost")
	assert.ErrorIs(t, err, ErrUnknownOrderStatus)
}
