package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

func TestSearchUsecase_EmptyQuery(t *testing.T) {
	products := new(ProductRepoMock)
	_, err := usecase.NewSearchUsecase(products).Search(context.Background(), "")
	assertHTTPError(t, err, http.StatusBadRequest, "Query is required and must be a string")
	products.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestSearchUsecase_WhitespaceQueryMatchesAll(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("ListActive", ctx).Return([]model.Product{
		{ID: 1, Name: "Lamp", Category: "home", Price: decimal.NewFromInt(10), IsActive: true},
		{ID: 2, Name: "Mat", Category: "sports", Price: decimal.NewFromInt(20), IsActive: true},
	}, nil).Once()

	out, err := usecase.NewSearchUsecase(products).Search(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, out.Products, 2)
	assert.Equal(t, "", out.SearchMetadata.SearchQuery)
}

func TestSearchUsecase_Search(t *testing.T) {
	ctx := context.Background()
	products := new(ProductRepoMock)
	products.On("ListActive", ctx).Return([]model.Product{
		{ID: 1, Name: "Red Running Shoes", Description: "light", Category: "shoes", Price: decimal.NewFromInt(80), IsActive: true},
		{ID: 2, Name: "Blue Running Shoes", Category: "shoes", Price: decimal.NewFromInt(60), IsActive: true},
		{ID: 3, Name: "Red Shoes", Category: "shoes", Price: decimal.NewFromInt(150), IsActive: true},
	}, nil).Once()

	out, err := usecase.NewSearchUsecase(products).Search(ctx, "red shoes under $100")
	require.NoError(t, err)

	require.Len(t, out.Products, 1)
	assert.Equal(t, int64(1), out.Products[0].ID)

	md := out.SearchMetadata
	assert.Equal(t, "red shoes under $100", md.OriginalQuery)
	assert.Equal(t, 1, md.TotalResults)
	assert.Equal(t, "shoes", md.ParsedFilters.Category)
	assert.Equal(t, "red", md.ParsedFilters.Color)
	require.NotNil(t, md.ParsedFilters.PriceRange)
	require.NotNil(t, md.ParsedFilters.PriceRange.Max)
	assert.Equal(t, int64(100), *md.ParsedFilters.PriceRange.Max)
	assert.Equal(t, md.ParsedFilters, md.AppliedFilters)
	assert.Contains(t, md.SearchQuery, "price:0-100")
}
