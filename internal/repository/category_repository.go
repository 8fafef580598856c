package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CategoryRepository interface {
	// 名前順
	List(ctx context.Context) ([]model.Category, error)
	//大文字小文字は区別しない
	FindByName(ctx context.Context, name string) (model.Category, error)
	// 無ければ作成
	EnsureExists(ctx context.Context, c model.Category) error
}
