package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 出品者ごとに1注文
type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID      int64           `gorm:"not null;index" json:"seller_id"`
	CustomerName  string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string          `gorm:"type:varchar(255)" json:"customer_email"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
