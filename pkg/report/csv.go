package report

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/entrhq/scribe/pkg/collect"
)

// CSVBuilder accumulates rows and renders them as CSV text for the agent
// file system. Quoting and escaping follow encoding/csv.
type CSVBuilder struct {
	columns []string
	rows    [][]string
}

// NewCSVBuilder creates a builder with the given column headers.
func NewCSVBuilder(columns ...string) *CSVBuilder {
	return &CSVBuilder{columns: columns}
}

// Columns returns the header names.
func (b *CSVBuilder) Columns() []string {
	return b.columns
}

// AddRow appends a row. The number of values must match the columns.
func (b *CSVBuilder) AddRow(values ...string) error {
	if len(values) != len(b.columns) {
		return fmt.Errorf("row has %d values, expected %d", len(values), len(b.columns))
	}
	b.rows = append(b.rows, values)
	return nil
}

// AddRecord appends a row built from record fields. The fields list maps
// positionally onto the columns; missing fields become empty cells.
func (b *CSVBuilder) AddRecord(record *collect.Record, fields ...string) error {
	if len(fields) != len(b.columns) {
		return fmt.Errorf("record maps %d fields, expected %d", len(fields), len(b.columns))
	}
	values := make([]string, len(fields))
	for i, field := range fields {
		values[i] = record.Get(field)
	}
	b.rows = append(b.rows, values)
	return nil
}

// Len returns the number of data rows.
func (b *CSVBuilder) Len() int {
	return len(b.rows)
}

// String renders the header and all rows as CSV.
func (b *CSVBuilder) String() (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write(b.columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range b.rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}
	return builder.String(), nil
}

// FormatRow renders a single CSV row, including the trailing newline.
// Workflows use it to append one row at a time to an existing .csv file.
func FormatRow(values ...string) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write(values); err != nil {
		return "", fmt.Errorf("failed to format CSV row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV row: %w", err)
	}
	return builder.String(), nil
}
