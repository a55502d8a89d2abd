package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVBuilder(t *testing.T) {
	builder := NewCSVBuilder("product_name", "brand", "price")

	require.NoError(t, builder.AddRow("UltraBook Pro 14", "TechCorp", "$1,299.99"))
	require.NoError(t, builder.AddRow("Basic Laptop 15", "ValueTech", "$549.00"))
	assert.Equal(t, 2, builder.Len())

	out, err := builder.String()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "product_name,brand,price", lines[0])
	assert.Equal(t, `UltraBook Pro 14,TechCorp,"$1,299.99"`, lines[1])
}

func TestCSVBuilder_RowLengthMismatch(t *testing.T) {
	builder := NewCSVBuilder("a", "b")
	assert.Error(t, builder.AddRow("only one"))
}

func TestCSVBuilder_AddRecord(t *testing.T) {
	builder := NewCSVBuilder("product_name", "brand", "price")

	records := makeRecords()
	for _, record := range records {
		require.NoError(t, builder.AddRecord(record, "name", "brand", "price"))
	}

	out, err := builder.String()
	require.NoError(t, err)
	assert.Contains(t, out, "Gamer X 17,TechCorp")
}

func TestCSVBuilder_AddRecord_FieldCountMismatch(t *testing.T) {
	builder := NewCSVBuilder("a", "b")
	record := makeRecords()[0]
	assert.Error(t, builder.AddRecord(record, "name"))
}

func TestFormatRow(t *testing.T) {
	row, err := FormatRow("Slim Air 13", "AeroBook", "$899.50")
	require.NoError(t, err)
	assert.Equal(t, "Slim Air 13,AeroBook,$899.50\n", row)
}

func TestFormatRow_QuotesSpecialCharacters(t *testing.T) {
	row, err := FormatRow("16GB RAM, 512GB SSD", "note \"quoted\"")
	require.NoError(t, err)
	assert.Equal(t, "\"16GB RAM, 512GB SSD\",\"note \"\"quoted\"\"\"\n", row)
}
