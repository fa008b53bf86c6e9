// Package csv parses delimited text into tables. The parser is strict on
// purpose: a row whose width differs from the header is a parse error, not a
// row to skip, so that a wrong delimiter guess fails fast and the caller can
// retry with its fallback read configuration.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"shopetl/internal/records"
	"shopetl/internal/table"
)

// Options configures the CSV parser. Zero values get sensible defaults.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from header names and values.
	TrimSpace bool
}

// Parser parses CSV input according to Options. A Parser may be reused
// across inputs.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse reads the header row and all data rows from r. Every returned record
// holds a key for every header column; empty cells are stored as nil. Any
// malformed row aborts the parse with an error.
func (p *Parser) Parse(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := p.headerColumns(header)

	t := table.New(cols)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		rec := make(records.Record, len(cols))
		for i, col := range cols {
			val := row[i]
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[col] = emptyToNil(val)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// headerColumns cleans raw header cells: BOM stripped from the first cell,
// optional trimming, and unnamed columns synthesized as "col_N".
func (p *Parser) headerColumns(header []string) []string {
	cols := make([]string, len(header))
	for i, c := range header {
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if p.opt.TrimSpace {
			c = strings.TrimSpace(c)
		}
		if c == "" {
			c = fmt.Sprintf("col_%d", i)
		}
		cols[i] = c
	}
	return cols
}

// emptyToNil converts an empty string to nil; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
