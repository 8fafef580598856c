package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点の名前・カテゴリ・価格を保存
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	CategorySnapshot    string          `gorm:"type:varchar(100);not null" json:"category_snapshot"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price_snapshot"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
