// Package records defines the row representation shared by the parser,
// transformers, and writers. A Record maps column names to values; values are
// strings as parsed from the source, nil for empty cells, or typed values set
// by later transforms (e.g. a derived float64 column).
package records

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a single row keyed by column name.
type Record map[string]any

// String returns the value for key rendered as a string, and whether the key
// held a non-nil value. nil values and missing keys report ok=false.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Float returns the value for key as a float64. String values are parsed
// after trimming; unparsable, nil, or missing values report ok=false.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
