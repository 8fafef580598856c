package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 出品者の保存・取得
type SellerRepository interface {
	//メール重複はErrDuplicate
	Create(ctx context.Context, seller *model.Seller) error
	FindByID(ctx context.Context, id int64) (*model.Seller, error)
	FindByEmail(ctx context.Context, email string) (*model.Seller, error)
}
