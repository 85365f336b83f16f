// Package ingest reads delimited clinical extracts into a table.Table.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/admitrisk/riskprep-go/pkg/table"
)

// Loader parses a delimited text file (first row = header) into a Table.
// Parsing is the only thing it does: cells are type-inferred into int, real
// or text values, and nothing else is rewritten.
type Loader struct {
	Delimiter rune
}

// NewLoader creates a loader with the default comma delimiter.
func NewLoader() *Loader {
	return &Loader{Delimiter: ','}
}

// LoadFile reads and parses the file at path.
func (l *Loader) LoadFile(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	t, err := l.Load(f)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

// Load reads and parses delimited text from r.
func (l *Loader) Load(r io.Reader) (table.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.Delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return table.New()
	}

	header := records[0]
	records = records[1:]

	cols := make([]table.Column, len(header))
	for i, name := range header {
		cols[i] = table.Column{
			Name:   name,
			Values: make([]table.Value, len(records)),
		}
	}

	for rowIdx, record := range records {
		if len(record) != len(header) {
			return table.Table{}, fmt.Errorf("row %d has %d fields, header has %d", rowIdx+2, len(record), len(header))
		}
		for colIdx, raw := range record {
			cols[colIdx].Values[rowIdx] = inferValue(strings.TrimSpace(raw))
		}
	}

	return table.New(cols...)
}

// inferValue parses a raw cell into the narrowest fitting kind. Values with
// a leading zero (postal codes, record identifiers) stay textual so the
// zero is not silently lost to numeric parsing.
func inferValue(raw string) table.Value {
	if raw == "" {
		return table.Text("")
	}
	if hasLeadingZero(raw) {
		return table.Text(raw)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return table.Int(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return table.Real(f)
	}
	return table.Text(raw)
}

func hasLeadingZero(raw string) bool {
	s := strings.TrimPrefix(raw, "-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}
