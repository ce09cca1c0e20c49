package service

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSearchEventSender struct {
	mock.Mock
}

func (s *MockSearchEventSender) SendSearchEvent(e domain.SearchEvent) {
	s.Called(e)
}

func testCatalog(events *MockSearchEventSender) Catalog {
	products := []domain.Product{
		testProduct("1", "29.99", "1"),
		testProduct("2", "59.99", "1"),
		testProduct("3", "49.99", "2"),
		testProduct("4", "34.99", "1"),
		testProduct("5", "89.99", "1"),
		testProduct("6", "44.99", "1"),
	}
	categories := []domain.Category{
		{ID: "1", Name: "Men's Clothing", Slug: "mens-clothing"},
		{ID: "2", Name: "Women's Clothing", Slug: "womens-clothing"},
	}
	if events == nil {
		return NewCatalog(products, categories, nil)
	}
	return NewCatalog(products, categories, events)
}

func TestCatalogLookup(t *testing.T) {
	c := testCatalog(nil)

	t.Run("BySlug", func(t *testing.T) {
		p, err := c.ProductBySlug("product-3")
		require.NoError(t, err)
		assert.Equal(t, "3", p.ID)

		_, err = c.ProductBySlug("absent")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("ByID", func(t *testing.T) {
		p, err := c.ProductByID("2")
		require.NoError(t, err)
		assert.Equal(t, "product-2", p.Slug)

		_, err = c.ProductByID("absent")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("ListsAreCopies", func(t *testing.T) {
		ps := c.Products()
		ps[0].Name = "changed"
		assert.Equal(t, "Product 1", c.Products()[0].Name)
		assert.Len(t, c.Categories(), 2)
	})
}

func TestCatalogRelatedProducts(t *testing.T) {
	c := testCatalog(nil)
	p, err := c.ProductByID("1")
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "4", "5", "6"}, ids(c.RelatedProducts(p, 4)))
	assert.Equal(t, []string{"2", "4"}, ids(c.RelatedProducts(p, 2)))
	assert.Empty(t, c.RelatedProducts(p, 0))
	assert.Empty(t, c.RelatedProducts(p, -1))

	women, err := c.ProductByID("3")
	require.NoError(t, err)
	assert.Empty(t, c.RelatedProducts(women, 4))
}

func TestCatalogSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsEventForQuery", func(t *testing.T) {
		events := new(MockSearchEventSender)
		events.On("SendSearchEvent", mock.MatchedBy(func(e domain.SearchEvent) bool {
			return e.UserID == "123" && e.Query == "product" &&
				e.Category == "1" && e.Results == 5 && !e.OccurredAt.IsZero()
		})).Once()

		c := testCatalog(events)
		crit := criteria()
		crit.Query = " product "
		crit.Category = "1"

		got := c.Search(ctx, "123", crit)

		assert.Len(t, got, 5)
		events.AssertExpectations(t)
	})

	t.Run("NoEventForBlankQuery", func(t *testing.T) {
		events := new(MockSearchEventSender)
		c := testCatalog(events)

		got := c.Search(ctx, "", criteria())

		assert.Len(t, got, 6)
		events.AssertNotCalled(t, "SendSearchEvent", mock.Anything)
	})

	t.Run("NilSender", func(t *testing.T) {
		c := testCatalog(nil)
		crit := criteria()
		crit.Query = "product"
		assert.Len(t, c.Search(ctx, "", crit), 6)
	})
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := testCatalog(nil)

	ps := c.Products()
	ps[0].Sizes[0] = "XXL"
	ps[0].Colors[0] = "Green"

	p, err := c.ProductByID("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "M", "L"}, p.Sizes)

	p.Colors[1] = "Black"
	p, err = c.ProductBySlug("product-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Red", "Blue"}, p.Colors)
}
