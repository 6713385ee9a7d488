// =============================================================================
// csv2locale - CSV Parser Module
// =============================================================================
//
// This module reads the delimited translation table. It handles:
//   - Different delimiters (comma by default, tab, pipe, semicolon, ...)
//   - Different encodings (any IANA charset name known to x/text)
//   - Byte order marks (UTF-8 and UTF-16) in front of the header
//   - Quoted fields with embedded delimiters and newlines
//
// The table is read once into memory. Cell values are kept verbatim; only the
// header names are trimmed.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/helio-fm/helio-sequencer/internal/config"
	"github.com/helio-fm/helio-sequencer/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARSING PROCESS:
//  1. Open the file
//  2. Decode it to UTF-8, honouring a byte order mark
//  3. Read the header record and clean the column names
//  4. Read every data record with its starting line number
//  5. Build the row-major table
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &types.InputError{Path: filePath, Err: err}
	}
	defer file.Close()

	return ParseReader(filePath, file, settings)
}

// ParseReader reads a table from r. name is used in errors and as the
// table source.
func ParseReader(name string, r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	decoded, err := decode(r, settings.Encoding)
	if err != nil {
		return nil, &types.InputError{Path: name, Err: err}
	}

	csvReader := csv.NewReader(bufio.NewReader(decoded))
	if err := configureReader(csvReader, settings); err != nil {
		return nil, &types.InputError{Path: name, Err: err}
	}

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &types.InputError{Path: name, Err: fmt.Errorf("file is empty")}
	}
	if err != nil {
		return nil, parseError(name, err)
	}

	var records []types.Record
	for {
		fields, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(name, err)
		}

		line, _ := csvReader.FieldPos(0)
		records = append(records, types.Record{Line: line, Fields: fields})
	}

	return types.NewTable(name, cleanHeaders(header), records)
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Allow variable number of fields per row; short rows read as empty cells.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes

	// Keep cell values verbatim; translations may start with spaces.
	reader.TrimLeadingSpace = false

	// FieldPos needs the records to be freshly allocated.
	reader.ReuseRecord = false

	return nil
}

// decode wraps r so that it yields UTF-8. A byte order mark always wins over
// the configured charset and is stripped from the stream.
func decode(r io.Reader, charset string) (io.Reader, error) {
	fallback, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}

	return transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder())), nil
}

// lookupEncoding resolves an IANA charset name.
func lookupEncoding(charset string) (encoding.Encoding, error) {
	name := strings.TrimSpace(charset)
	if name == "" || strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8") {
		return unicode.UTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", charset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", charset)
	}
	return enc, nil
}

// parseError converts a csv.ParseError into an InputError carrying its line.
func parseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &types.InputError{Path: name, Line: pe.StartLine, Err: pe.Err}
	}
	return &types.InputError{Path: name, Err: err}
}

// cleanHeaders trims header values and names empty ones by position, so a
// spreadsheet export with trailing empty columns still has unique names.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}
