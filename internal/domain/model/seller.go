package model

import "time"

// マーケットプレイスの出品者
type Seller struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	StoreName    string    `gorm:"column:store_name;type:varchar(255);not null" json:"storeName"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 商品に付ける公開用の出品者情報。連絡先は含めない
type SellerSummary struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	StoreName string `gorm:"column:store_name;type:varchar(255);not null" json:"storeName"`
}

func (SellerSummary) TableName() string { return "sellers" }
