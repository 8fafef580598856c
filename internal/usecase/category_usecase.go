package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository, products repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories, products: products}
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categories.List(ctx)
	if err != nil {
		return nil, internalError(err, "list categories")
	}
	return cats, nil
}

type CategoryProductsOutput struct {
	Category   model.Category  `json:"category"`
	Data       []model.Product `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// カテゴリページ。公開商品のみ
func (u *CategoryUsecase) ListCategoryProducts(ctx context.Context, name string, page, limit int) (CategoryProductsOutput, error) {
	if err := validatePage(page, limit); err != nil {
		return CategoryProductsOutput{}, err
	}

	cat, err := u.categories.FindByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return CategoryProductsOutput{}, NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err != nil {
		return CategoryProductsOutput{}, internalError(err, "find category")
	}

	active := true
	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:     page,
		Limit:    limit,
		Category: cat.Name,
		IsActive: &active,
	})
	if err != nil {
		return CategoryProductsOutput{}, internalError(err, "list category products")
	}

	return CategoryProductsOutput{
		Category:   cat,
		Data:       items,
		Pagination: newPagination(page, limit, total),
	}, nil
}
