package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	// 明細ごと作成
	Create(ctx context.Context, order *model.Order) error
	// 分析用。明細をpreloadして新しい順
	ListBySellerSince(ctx context.Context, sellerID int64, since time.Time) ([]model.Order, error)
}
