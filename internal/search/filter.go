package search

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

// 条件に合う商品だけを入力順のまま返す
func Filter(f Filters, products []model.Product) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if Matches(f, p) {
			out = append(out, p)
		}
	}
	return out
}

// 1商品が全条件を満たすか
func Matches(f Filters, p model.Product) bool {
	if f.Category != "" && strings.ToLower(p.Category) != f.Category {
		return false
	}

	if f.PriceRange != nil {
		if f.PriceRange.Min != nil && *f.PriceRange.Min > 0 &&
			p.Price.LessThan(decimal.NewFromInt(*f.PriceRange.Min)) {
			return false
		}
		if f.PriceRange.Max != nil && *f.PriceRange.Max > 0 &&
			p.Price.GreaterThan(decimal.NewFromInt(*f.PriceRange.Max)) {
			return false
		}
	}

	text := strings.ToLower(p.Name + " " + p.Description)

	for _, attr := range []string{f.Color, f.Size, f.Brand, f.Material} {
		if attr != "" && !strings.Contains(text, attr) {
			return false
		}
	}

	if len(f.Keywords) > 0 {
		hit := false
		for _, k := range f.Keywords {
			if strings.Contains(text, k) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	return true
}

// 条件を "category:x price:0-100 keywords:a b" 形式の文字列にする
func BuildQuery(f Filters) string {
	var parts []string

	if f.Category != "" {
		parts = append(parts, "category:"+f.Category)
	}
	if f.Color != "" {
		parts = append(parts, "color:"+f.Color)
	}
	if pr := f.PriceRange; pr != nil && pr.Max != nil && *pr.Max != 0 {
		//下限だけの指定は出力しない
		if pr.Min != nil && *pr.Min != 0 {
			parts = append(parts, fmt.Sprintf("price:%d-%d", *pr.Min, *pr.Max))
		} else {
			parts = append(parts, fmt.Sprintf("price:0-%d", *pr.Max))
		}
	}
	if f.Size != "" {
		parts = append(parts, "size:"+f.Size)
	}
	if f.Brand != "" {
		parts = append(parts, "brand:"+f.Brand)
	}
	if f.Material != "" {
		parts = append(parts, "material:"+f.Material)
	}
	if len(f.Keywords) > 0 {
		parts = append(parts, "keywords:"+strings.Join(f.Keywords, " "))
	}

	return strings.Join(parts, " ")
}
