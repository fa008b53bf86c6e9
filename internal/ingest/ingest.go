// Package ingest loads the raw export files. Each load makes two attempts:
// the primary configuration expects a comma-delimited UTF-8 file, the
// fallback a semicolon-delimited Latin-1 file. Upstream exports have shipped
// in both shapes, so a primary parse failure is routine, not an anomaly; only
// failure of both attempts is fatal.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	pcsv "shopetl/internal/parser/csv"
	"shopetl/internal/table"
)

// errNotUTF8 marks a primary attempt rejected before parsing because the raw
// bytes are not valid UTF-8.
var errNotUTF8 = errors.New("input is not valid UTF-8")

// Error is the fatal ingestion error: the file could not be loaded under the
// primary or the fallback configuration. It carries both attempt errors so
// the operator sees why each configuration was rejected.
type Error struct {
	Path     string
	Primary  error
	Fallback error
}

func (e *Error) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("ingest %s: %v", e.Path, e.Primary)
	}
	return fmt.Sprintf("ingest %s: primary (comma/utf-8): %v; fallback (semicolon/latin-1): %v",
		e.Path, e.Primary, e.Fallback)
}

// Load reads the file at path into a table. The primary attempt parses
// comma-delimited UTF-8; on any failure the fallback attempt re-parses the
// same bytes as semicolon-delimited Latin-1. Values and headers are
// whitespace-trimmed. A row count is logged on success.
func Load(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Primary: err}
	}

	primaryErr := errNotUTF8
	if utf8.Valid(data) {
		p := pcsv.NewParser(pcsv.Options{Comma: ',', TrimSpace: true})
		t, err := p.Parse(bytes.NewReader(data))
		if err == nil {
			log.Printf("ingest: %s: loaded %d rows", path, t.Len())
			return t, nil
		}
		primaryErr = err
	}

	dec := charmap.ISO8859_1.NewDecoder()
	p := pcsv.NewParser(pcsv.Options{Comma: ';', TrimSpace: true})
	t, ferr := p.Parse(transform.NewReader(bytes.NewReader(data), dec))
	if ferr != nil {
		return nil, &Error{Path: path, Primary: primaryErr, Fallback: ferr}
	}
	log.Printf("ingest: %s: loaded %d rows (fallback read: semicolon/latin-1)", path, t.Len())
	return t, nil
}
