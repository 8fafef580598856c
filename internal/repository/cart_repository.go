package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// カートの保存先（Redis）
type CartRepository interface {
	// 無ければErrNotFound
	Get(ctx context.Context, cartID string) (model.Cart, error)
	// TTLを延長して保存
	Save(ctx context.Context, cart model.Cart) error
	Delete(ctx context.Context, cartID string) error
}
