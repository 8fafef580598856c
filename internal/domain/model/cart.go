package model

import "github.com/shopspring/decimal"

// Redisに保存するカート
type Cart struct {
	ID    string     `json:"cartId"`
	Items []CartItem `json:"items"`
}

// カートの1行。追加時点の商品情報を持つ
type CartItem struct {
	ProductID int64           `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int64           `json:"quantity"`
	SellerID  int64           `json:"seller"`
}

// 合計数量
func (c *Cart) TotalItems() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// 合計金額
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
