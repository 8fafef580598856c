package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type categoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

func (r *categoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *categoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&c).Error
	if err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *categoryGormRepository) EnsureExists(ctx context.Context, c model.Category) error {
	return r.db.WithContext(ctx).
		Where(model.Category{Name: c.Name}).
		Attrs(model.Category{Description: c.Description}).
		FirstOrCreate(&c).Error
}
