// Package search はキーワードベースの「自然言語」商品検索。
// 外部サービスは使わず、固定テーブルと正規表現だけで検索語を分解する。
package search

import (
	"regexp"
	"strconv"
	"strings"
)

// 上限価格と価格帯
var (
	maxPricePattern   = regexp.MustCompile(`(?:under|below|less than|up to|maximum|max)\s*\$?(\d+)`)
	priceRangePattern = regexp.MustCompile(`(?:between|from)\s*\$?(\d+)\s*(?:and|to)\s*\$?(\d+)`)
)

// 価格帯。未指定側はnil
type PriceRange struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// 検索語から抜き出した条件。空文字は未指定
type Filters struct {
	Category   string      `json:"category,omitempty"`
	Color      string      `json:"color,omitempty"`
	Size       string      `json:"size,omitempty"`
	Brand      string      `json:"brand,omitempty"`
	Material   string      `json:"material,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Keywords   []string    `json:"keywords"`
}

// 検索語をFiltersに分解する。qだけに依存する純関数
func ParseQuery(q string) Filters {
	lower := strings.ToLower(q)
	f := Filters{Keywords: []string{}}

	if m := maxPricePattern.FindStringSubmatch(lower); m != nil {
		if max, ok := parseAmount(m[1]); ok {
			f.PriceRange = &PriceRange{Max: &max}
		}
	}
	//範囲指定は上限指定より優先
	if m := priceRangePattern.FindStringSubmatch(lower); m != nil {
		min, okMin := parseAmount(m[1])
		max, okMax := parseAmount(m[2])
		if okMin && okMax {
			f.PriceRange = &PriceRange{Min: &min, Max: &max}
		}
	}

	f.Color = firstSubstring(lower, colorKeywords)
	for _, c := range categoryKeywords {
		if firstSubstring(lower, c.words) != "" {
			f.Category = c.name
			break
		}
	}
	f.Size = firstSubstring(lower, sizeKeywords)
	f.Material = firstSubstring(lower, materialKeywords)
	f.Brand = firstSubstring(lower, brandKeywords)

	for _, w := range strings.Fields(lower) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if len(w) <= 2 {
			continue
		}
		if _, attr := attributeWords[w]; attr {
			continue
		}
		f.Keywords = append(f.Keywords, w)
	}

	return f
}

func parseAmount(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstSubstring(text string, table []string) string {
	for _, w := range table {
		if strings.Contains(text, w) {
			return w
		}
	}
	return ""
}
