package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadProducts(t *testing.T) {
	buf := buildSheet(t, [][]any{
		{"Name", "Price", "Category", "Stock Quantity", "Is Active", "Description"},
		{"Desk Lamp", "24.50", "home", "3", "false", "warm light"},
		{"", "", "", "", "", ""},
		{"Bad Price", "abc", "home"},
		{"No Stock", "5", "sports"},
	})

	rows, err := ReadProducts(buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 2, rows[0].Line)
	assert.NoError(t, rows[0].Err)
	assert.Equal(t, "Desk Lamp", rows[0].Name)
	assert.Equal(t, "24.5", rows[0].Price.String())
	assert.Equal(t, int64(3), rows[0].StockQuantity)
	assert.False(t, rows[0].IsActive)
	assert.Equal(t, "warm light", rows[0].Description)

	assert.Equal(t, 4, rows[1].Line)
	assert.Error(t, rows[1].Err)

	assert.NoError(t, rows[2].Err)
	assert.True(t, rows[2].IsActive)
	assert.Equal(t, int64(0), rows[2].StockQuantity)
}

func TestReadProducts_MissingColumn(t *testing.T) {
	buf := buildSheet(t, [][]any{{"Name", "Price"}, {"x", "1"}})

	_, err := ReadProducts(buf)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadProducts_NotXLSX(t *testing.T) {
	_, err := ReadProducts(bytes.NewBufferString("plain text"))
	assert.Error(t, err)
}
