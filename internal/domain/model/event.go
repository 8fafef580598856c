package model

import "time"

type ProductEventType string

const (
	ProductEventCreated ProductEventType = "product.created"
	ProductEventUpdated ProductEventType = "product.updated"
	ProductEventDeleted ProductEventType = "product.deleted"
)

// Kafkaに流す商品イベント
type ProductEvent struct {
	ID        string           `json:"id"`
	Type      ProductEventType `json:"type"`
	ProductID int64            `json:"productId"`
	SellerID  int64            `json:"sellerId"`
	Timestamp time.Time        `json:"timestamp"`
}
