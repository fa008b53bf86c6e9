package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"shopetl/internal/records"
)

// DeDup collapses records sharing a key to the first occurrence in the
// batch. First-seen semantics are what the downstream tables assume: the
// order-header table keeps one row per order id, the catalog one row per
// product id, each taken from the earliest source row.
//
// Keys are the concatenation of the configured fields (nil -> "\x00").
// The seen-set buckets keys by xxh3 hash and confirms matches against the
// full key text, so two distinct keys never collapse. Records missing a key
// field entirely are passed through unchanged in place, preserving input
// row order.
type DeDup struct {
	Keys []string
}

// Apply returns a new slice holding the first record seen for each key, in
// input order.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[uint64][]string, len(in))
	out := make([]records.Record, 0, len(in))

	for _, r := range in {
		key, ok := d.keyOf(r)
		if !ok {
			out = append(out, r)
			continue
		}
		h := xxh3.HashString(key)
		bucket := seen[h]
		if contains(bucket, key) {
			continue
		}
		seen[h] = append(bucket, key)
		out = append(out, r)
	}
	return out
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// keyOf builds the composite key text for r, reporting ok=false when a key
// field is absent from the record.
func (d DeDup) keyOf(r records.Record) (string, bool) {
	var b strings.Builder
	for _, k := range d.Keys {
		v, ok := r[k]
		if !ok {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\x1f') // unlikely separator
		}
		switch t := v.(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			b.WriteString(fmt.Sprint(t))
		}
	}
	return b.String(), true
}
