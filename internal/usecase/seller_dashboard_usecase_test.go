package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

func TestSellerDashboard_ListProducts(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	sellerID := int64(7)
	dash := usecase.NewSellerDashboardUsecase(f.uc, f.products)

	f.products.On("List", ctx, repo.ProductListQuery{Page: 1, Limit: 10, SellerID: &sellerID}).
		Return([]model.Product{{ID: 1}}, int64(11), nil).Once()

	out, err := dash.ListProducts(ctx, sellerID, usecase.SellerProductsInput{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, usecase.SellerPagination{Page: 1, Limit: 10, Total: 11, Pages: 2}, out.Pagination)

	_, err = dash.ListProducts(ctx, 0, usecase.SellerProductsInput{Page: 1, Limit: 10})
	assertHTTPError(t, err, http.StatusUnauthorized, "Authentication required")
}

func TestSellerDashboard_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		f := newProductFixture()
		dash := usecase.NewSellerDashboardUsecase(f.uc, f.products)

		_, err := dash.CreateProduct(ctx, 7, usecase.SellerProductInput{
			Title: "Lamp", Description: "", Price: decimal.Zero, Category: "home", Images: []string{"nope"}, Stock: -1,
		})
		he, ok := usecase.AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
		assert.Equal(t, "Invalid input data", he.Message)
	})

	t.Run("maps title and first image", func(t *testing.T) {
		f := newProductFixture()
		dash := usecase.NewSellerDashboardUsecase(f.uc, f.products)

		f.sellers.On("FindByID", ctx, int64(7)).Return(&model.Seller{ID: 7}, nil).Once()
		f.categories.On("FindByName", ctx, "home").Return(model.Category{Name: "home"}, nil).Once()
		f.tx.On("WithinTx", ctx).Return(nil).Once()
		f.products.On("Create", ctx, mock.MatchedBy(func(p model.Product) bool {
			return p.Name == "Lamp" && p.ImageURL == "https://img.example/1.png" && p.StockQuantity == 4 && p.SellerID == 7
		})).Return(model.Product{ID: 20, Name: "Lamp", SellerID: 7}, nil).Once()
		f.audits.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.pub.On("Publish", ctx, mock.Anything).Return(nil).Once()

		p, err := dash.CreateProduct(ctx, 7, usecase.SellerProductInput{
			Title: "Lamp", Description: "Warm", Price: decimal.RequireFromString("30"), Category: "home",
			Images: []string{"https://img.example/1.png", "https://img.example/2.png"}, Stock: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(20), p.ID)
		f.products.AssertExpectations(t)
	})
}

func TestSellerDashboard_ImportProducts(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()
	dash := usecase.NewSellerDashboardUsecase(f.uc, f.products)

	f.sellers.On("FindByID", ctx, int64(7)).Return(&model.Seller{ID: 7}, nil)
	f.categories.On("FindByName", ctx, "home").Return(model.Category{Name: "home"}, nil)
	f.categories.On("FindByName", ctx, "toys").Return(model.Category{}, repo.ErrNotFound)
	f.tx.On("WithinTx", ctx).Return(nil)
	f.products.On("Create", ctx, mock.Anything).Return(model.Product{ID: 30, SellerID: 7}, nil).Once()
	f.audits.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionImportProduct
	})).Return(nil).Once()
	f.pub.On("Publish", ctx, mock.Anything).Return(nil)

	out, err := dash.ImportProducts(ctx, 7, []usecase.ImportRow{
		{Line: 2, Input: usecase.CreateProductInput{Name: "Lamp", Price: price("10"), Category: "home"}},
		{Line: 3, Input: usecase.CreateProductInput{Name: "Robot", Price: price("15"), Category: "toys"}},
		{Line: 4, Err: errors.New("price: not a number")},
	})
	require.NoError(t, err)

	require.Len(t, out.Created, 1)
	assert.Equal(t, []usecase.ImportFailure{
		{Row: 3, Error: "Invalid category"},
		{Row: 4, Error: "price: not a number"},
	}, out.Failed)
	f.audits.AssertExpectations(t)
}
