// Package report builds the derivative artifacts of a collection workflow:
// summary statistics, CSV tables, markdown documents, JSON summaries, and
// PDF inspection helpers.
package report

import (
	"fmt"
	"sort"

	"github.com/entrhq/scribe/pkg/collect"
)

// Stats summarizes the numeric values of one record field.
type Stats struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
}

// FieldStats computes statistics over the numeric values of the given
// field. Records where the field is missing or non-numeric are skipped;
// an error is returned only when no record yields a value.
func FieldStats(records []*collect.Record, field string) (Stats, error) {
	var stats Stats
	var sum float64

	for _, record := range records {
		value, err := record.Float(field)
		if err != nil {
			continue
		}

		if stats.Count == 0 || value < stats.Min {
			stats.Min = value
		}
		if stats.Count == 0 || value > stats.Max {
			stats.Max = value
		}
		sum += value
		stats.Count++
	}

	if stats.Count == 0 {
		return Stats{}, fmt.Errorf("no numeric values for field %q", field)
	}

	stats.Avg = sum / float64(stats.Count)
	return stats, nil
}

// FieldCount is one distinct field value and how often it occurs.
type FieldCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Frequency counts the distinct values of a field across records, most
// frequent first. Ties order alphabetically so output is stable.
func Frequency(records []*collect.Record, field string) []FieldCount {
	counts := make(map[string]int)
	for _, record := range records {
		if record.Has(field) {
			counts[record.Get(field)]++
		}
	}

	result := make([]FieldCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, FieldCount{Value: value, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})

	return result
}

// Top returns the n most frequent values of a field.
func Top(records []*collect.Record, field string, n int) []FieldCount {
	freq := Frequency(records, field)
	if n < len(freq) {
		freq = freq[:n]
	}
	return freq
}
