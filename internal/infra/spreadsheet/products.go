// Package spreadsheet は一括登録用の.xlsxを読む。
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptySheet    = errors.New("spreadsheet has no rows")
	ErrMissingColumn = errors.New("missing required column")
)

// 1行目はヘッダ。列順は自由
var requiredColumns = []string{"name", "price", "category"}

// 読み取った1行。Errがあれば登録しない
type ProductRow struct {
	Line          int
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	ImageURL      string
	StockQuantity int64
	IsActive      bool
	Err           error
}

// 最初のシートを商品行として読む
func ReadProducts(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	var out []ProductRow
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		out = append(out, parseRow(i+2, cells, cols))
	}
	return out, nil
}

func parseRow(line int, cells []string, cols map[string]int) ProductRow {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	row := ProductRow{
		Line:        line,
		Name:        cell("name"),
		Description: cell("description"),
		Category:    cell("category"),
		ImageURL:    cell("image_url"),
		IsActive:    true,
	}

	if row.Name == "" {
		row.Err = errors.New("name is required")
		return row
	}
	if row.Category == "" {
		row.Err = errors.New("category is required")
		return row
	}

	price, err := decimal.NewFromString(cell("price"))
	if err != nil {
		row.Err = fmt.Errorf("invalid price %q", cell("price"))
		return row
	}
	row.Price = price

	if s := cell("stock_quantity"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			row.Err = fmt.Errorf("invalid stock_quantity %q", s)
			return row
		}
		row.StockQuantity = n
	}
	if s := cell("is_active"); s != "" {
		b, err := strconv.ParseBool(strings.ToLower(s))
		if err != nil {
			row.Err = fmt.Errorf("invalid is_active %q", s)
			return row
		}
		row.IsActive = b
	}

	return row
}

// "Stock Quantity" -> "stock_quantity"
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	switch h {
	case "stock", "quantity":
		return "stock_quantity"
	case "image", "image_link":
		return "image_url"
	case "title":
		return "name"
	}
	return h
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
