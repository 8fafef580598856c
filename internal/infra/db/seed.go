package db

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 初期カテゴリ
var DefaultCategories = []model.Category{
	{Name: "electronics", Description: "Phones, laptops, cameras and other devices"},
	{Name: "clothing", Description: "Shirts, pants, dresses and outerwear"},
	{Name: "shoes", Description: "Sneakers, boots, sandals and more"},
	{Name: "accessories", Description: "Bags, wallets, watches and jewelry"},
	{Name: "home", Description: "Furniture, lamps and home decor"},
	{Name: "sports", Description: "Fitness, running and outdoor gear"},
}

// 無いカテゴリだけ作成
func SeedCategories(ctx context.Context, categories repo.CategoryRepository) error {
	for _, c := range DefaultCategories {
		if err := categories.EnsureExists(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
