// =============================================================================
// csv2locale - XLSX Table Parser
// =============================================================================
//
// Translators often keep the table in a spreadsheet. This module reads a
// worksheet of an XLSX workbook into the same row-major table the CSV reader
// produces:
//
//   | ID           | en             | fr                 |
//   |--------------|----------------|--------------------|
//   | ::locale     | English        | Français           |
//   | ::plural     | n != 1         | n > 1              |
//   | menu.file    | File           | Fichier            |
//   | item.count   | {x} item       | {x} élément        |
//   |              | {x} items      | {x} éléments       |   <- same cell,
//                                                              in-cell line break
//
// Row 1 is the header; every later row is a data row.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/helio-fm/helio-sequencer/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the named worksheet of an XLSX file. An empty sheet name
// selects the first worksheet.
func Parse(filePath string, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, &types.InputError{Path: filePath, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	return parseSheet(f, filePath, sheet)
}

// parseSheet reads one worksheet from an open workbook.
func parseSheet(f *excelize.File, source, sheet string) (*types.Table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, &types.InputError{Path: source, Err: fmt.Errorf("workbook has no sheets")}
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, &types.InputError{Path: source, Err: fmt.Errorf("workbook has no sheet %q (sheets: %s)", sheet, strings.Join(f.GetSheetList(), ", "))}
	}

	// RawCellValue keeps numeric cells as typed, without number formats.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &types.InputError{Path: source, Err: fmt.Errorf("failed to read rows of sheet %q: %w", sheet, err)}
	}

	if len(rows) == 0 {
		return nil, &types.InputError{Path: source, Err: fmt.Errorf("sheet %q is empty", sheet)}
	}

	header := cleanHeaders(rows[0])

	records := make([]types.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		records = append(records, types.Record{
			Line:   i + 1,
			Fields: normalizeLineBreaks(rows[i]),
		})
	}

	return types.NewTable(source, header, records)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cleanHeaders trims header values and names empty ones by position.
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

// normalizeLineBreaks turns the CRLF line breaks some spreadsheet editors
// store inside cells into LF, matching what a CSV export produces.
func normalizeLineBreaks(row []string) []string {
	for i, cell := range row {
		if strings.Contains(cell, "\r") {
			cell = strings.ReplaceAll(cell, "\r\n", "\n")
			row[i] = strings.ReplaceAll(cell, "\r", "\n")
		}
	}
	return row
}
