package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/entrhq/scribe/pkg/collect"
)

// Summary is the machine-readable wrap-up of a collection workflow,
// written as the final JSON artifact alongside the human-readable report.
type Summary struct {
	Title        string                  `json:"title"`
	GeneratedAt  time.Time               `json:"generated_at"`
	TotalRecords int                     `json:"total_records"`
	Sources      []string                `json:"sources,omitempty"`
	Stats        map[string]Stats        `json:"stats,omitempty"`
	TopValues    map[string][]FieldCount `json:"top_values,omitempty"`
	Files        []string                `json:"files,omitempty"`
}

// BuildSummary creates a summary over the records, collecting the distinct
// source URLs in first-seen order.
func BuildSummary(title string, records []*collect.Record) *Summary {
	seen := make(map[string]bool)
	var sources []string
	for _, record := range records {
		if record.Source == "" || seen[record.Source] {
			continue
		}
		seen[record.Source] = true
		sources = append(sources, record.Source)
	}

	return &Summary{
		Title:        title,
		GeneratedAt:  time.Now(),
		TotalRecords: len(records),
		Sources:      sources,
	}
}

// WithStats attaches field statistics to the summary. Fields with no
// numeric values are skipped.
func (s *Summary) WithStats(records []*collect.Record, fields ...string) *Summary {
	for _, field := range fields {
		stats, err := FieldStats(records, field)
		if err != nil {
			continue
		}
		if s.Stats == nil {
			s.Stats = make(map[string]Stats)
		}
		s.Stats[field] = stats
	}
	return s
}

// WithTopValues attaches the n most frequent values of a field.
func (s *Summary) WithTopValues(records []*collect.Record, field string, n int) *Summary {
	top := Top(records, field, n)
	if len(top) == 0 {
		return s
	}
	if s.TopValues == nil {
		s.TopValues = make(map[string][]FieldCount)
	}
	s.TopValues[field] = top
	return s
}

// WithFiles records the file inventory produced by the workflow.
func (s *Summary) WithFiles(files []string) *Summary {
	s.Files = files
	return s
}

// JSON renders the summary as indented JSON.
func (s *Summary) JSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return string(data), nil
}
