package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	//JSONでは価格を数値で返す
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Category      string          `gorm:"type:varchar(100);not null;index" json:"category"`
	ImageURL      string          `gorm:"column:image_url;type:text" json:"image_url"`
	StockQuantity int64           `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	IsActive      bool            `gorm:"not null;index" json:"is_active"`
	SellerID      int64           `gorm:"not null;index" json:"seller_id"`
	Seller        *SellerSummary  `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}
