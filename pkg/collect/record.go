package collect

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is a single structured item extracted from a page, such as one
// product listing. Field values are kept as strings; numeric accessors
// normalize currency formatting on demand.
type Record struct {
	Source      string
	Fields      map[string]string
	CollectedAt time.Time
}

// NewRecord creates an empty record attributed to the given source URL.
func NewRecord(source string) *Record {
	return &Record{
		Source:      source,
		Fields:      make(map[string]string),
		CollectedAt: time.Now(),
	}
}

// Set stores a field value.
func (r *Record) Set(key, value string) {
	r.Fields[key] = value
}

// Get returns a field value, or the empty string if the field is absent.
func (r *Record) Get(key string) string {
	return r.Fields[key]
}

// Has reports whether the field is present and non-empty.
func (r *Record) Has(key string) bool {
	return strings.TrimSpace(r.Fields[key]) != ""
}

// Float parses a field as a number, stripping currency symbols, thousands
// separators, and surrounding text like "from $1,299.99".
func (r *Record) Float(key string) (float64, error) {
	raw, ok := r.Fields[key]
	if !ok {
		return 0, fmt.Errorf("field %q not present", key)
	}

	cleaned := normalizeNumber(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("field %q has no numeric content: %q", key, raw)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q is not numeric: %q", key, raw)
	}
	return value, nil
}

// normalizeNumber extracts the first numeric run from text, dropping
// currency symbols and comma separators.
func normalizeNumber(raw string) string {
	var builder strings.Builder
	started := false

	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			builder.WriteRune(r)
			started = true
		case r == '.' && started:
			builder.WriteRune(r)
		case r == ',':
			// Thousands separator, skip
		case r == '-' && !started && builder.Len() == 0:
			builder.WriteRune(r)
		default:
			if started {
				return builder.String()
			}
		}
	}

	return builder.String()
}
