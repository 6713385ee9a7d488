// =============================================================================
// csv2locale - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Table, Row)
//   - converter (Table in, Document out)
//   - validation
//   - xmlwriter (Document)
//
// =============================================================================

package types

import "fmt"

// IDColumn is the header name of the column holding the translation key.
const IDColumn = "ID"

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is a translation table loaded once into row-major memory.
type Table struct {
	// Header contains the column names in file order.
	Header []string

	// Rows contains the data rows in file order. Empty records are dropped.
	Rows []Row

	// Source is the path the table was read from.
	Source string
}

// Row is a single data row of the table.
type Row struct {
	// Number is the 1-based record number in the source (header is 1).
	// Useful for error reporting.
	Number int

	// Cells maps column name to cell text. Columns missing from a short
	// record are present with an empty value.
	Cells map[string]string
}

// ID returns the translation key of the row.
func (r Row) ID() string {
	return r.Cells[IDColumn]
}

// Get returns the cell for the given column.
func (r Row) Get(column string) string {
	return r.Cells[column]
}

// HasColumn reports whether the header contains the given column.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// RequireColumns checks that every column exists in the header and returns a
// MissingColumnError for the first one that does not.
func (t *Table) RequireColumns(columns ...string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return &MissingColumnError{Column: c, Path: t.Source, Available: t.Languages()}
		}
	}
	return nil
}

// Languages returns every header column except ID.
func (t *Table) Languages() []string {
	langs := make([]string, 0, len(t.Header))
	for _, h := range t.Header {
		if h != IDColumn {
			langs = append(langs, h)
		}
	}
	return langs
}

// Record is one raw record handed over by a table reader.
type Record struct {
	// Line is the 1-based line (or worksheet row) the record starts on.
	Line int

	// Fields contains the raw cell values in column order.
	Fields []string
}

// NewTable builds a Table from a header and the raw records that follow it.
// It is shared by the CSV and XLSX readers so both produce identical tables.
func NewTable(source string, header []string, records []Record) (*Table, error) {
	if len(header) == 0 {
		return nil, &InputError{Path: source, Err: fmt.Errorf("table has no header row")}
	}

	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return nil, &InputError{Path: source, Line: 1, Err: fmt.Errorf("duplicate column %q in header", h)}
		}
		seen[h] = true
	}
	if !seen[IDColumn] {
		return nil, &InputError{Path: source, Line: 1, Err: fmt.Errorf("header has no %q column", IDColumn)}
	}

	table := &Table{
		Header: header,
		Rows:   make([]Row, 0, len(records)),
		Source: source,
	}

	for _, record := range records {
		if isRecordEmpty(record.Fields) {
			continue
		}

		cells := make(map[string]string, len(header))
		for col, name := range header {
			if col < len(record.Fields) {
				cells[name] = record.Fields[col]
			} else {
				cells[name] = ""
			}
		}

		table.Rows = append(table.Rows, Row{Number: record.Line, Cells: cells})
	}

	return table, nil
}

// isRecordEmpty checks if a record contains only empty values.
func isRecordEmpty(fields []string) bool {
	for _, cell := range fields {
		if cell != "" {
			return false
		}
	}
	return true
}
