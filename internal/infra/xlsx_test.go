package infra

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadTable_XLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, "Plans", []string{"Recipe", "Quantity"}, [][]interface{}{
		{"Stove", 4},
		{"Oven", 12},
	})
	require.NoError(t, err)

	table, err := ReadTable(&buf, "upload.xlsx")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Recipe", "Quantity"},
		{"Stove", "4"},
		{"Oven", "12"},
	}, table)
}

func TestReadTable_CSVWithBOM(t *testing.T) {
	in := "\xef\xbb\xbfRecipe Name, Target\nStove,4\nOven\n"
	table, err := ReadTable(strings.NewReader(in), "PLANS.CSV")
	require.NoError(t, err)
	assert.Equal(t, []string{"Recipe Name", "Target"}, table[0])
	assert.Equal(t, []string{"Oven"}, table[2])
}

func TestReadTable_NotASpreadsheet(t *testing.T) {
	_, err := ReadTable(strings.NewReader("definitely not a zip"), "plans.xlsx")
	assert.Error(t, err)
}
