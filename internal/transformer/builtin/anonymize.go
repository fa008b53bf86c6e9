// Package builtin contains the reusable transformers the pipeline is built
// from: anonymization of sensitive columns, required-field filtering,
// first-seen de-duplication, and derived-column computation. All transformers
// operate in-memory on a batch of records and preserve input row order.
package builtin

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"shopetl/internal/records"
)

// NotInformed is the sentinel replacing absent or blank sensitive values.
const NotInformed = "not_informed"

// codeLen is the length, in hex characters, of an anonymization code.
const codeLen = 12

// Anonymize replaces the configured fields in place with deterministic
// one-way codes. The same input value always maps to the same code, so
// anonymized identifiers remain joinable and groupable without being
// reversible. Fields a record does not carry are skipped.
type Anonymize struct {
	Fields []string
}

// Apply rewrites every configured field of every record with Code(value).
func (a Anonymize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, f := range a.Fields {
			v, ok := r[f]
			if !ok {
				continue
			}
			r[f] = Code(v)
		}
	}
	return in
}

// Code returns the anonymization code for v: NotInformed when v is nil or
// blank after trimming, otherwise the first 12 lowercase hex characters of
// the SHA-256 digest of v's string form.
func Code(v any) string {
	if v == nil {
		return NotInformed
	}
	s := toText(v)
	if strings.TrimSpace(s) == "" {
		return NotInformed
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:codeLen]
}

// toText stabilizes the hashed text form across value types.
func toText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
