package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	domainrepo "storefront/internal/repository"
)

type sellerGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewSellerGormRepository(db *gorm.DB) domainrepo.SellerRepository {
	return &sellerGormRepository{db: db}
}

// メール重複はErrDuplicate
func (r *sellerGormRepository) Create(ctx context.Context, seller *model.Seller) error {
	return translate(r.db.WithContext(ctx).Create(seller).Error)
}

// emailで1件取得
func (r *sellerGormRepository) FindByEmail(ctx context.Context, email string) (*model.Seller, error) {
	var s model.Seller
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// IDで1件取得
func (r *sellerGormRepository) FindByID(ctx context.Context, id int64) (*model.Seller, error) {
	var s model.Seller
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}
