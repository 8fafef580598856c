package db

import (
	"gorm.io/gorm"

	"storefront/internal/domain/model"
)

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.Seller{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	)
}
