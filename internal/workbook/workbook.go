// Package workbook reads and rewrites xlsx worksheets. Sheets are read
// into header-keyed string rows; writes replace a single sheet's contents
// wholesale while preserving every other sheet in the workbook, and are
// committed with a write-temp-then-rename so a crash mid-save never
// leaves a half-written file behind.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row maps a header name to the cell value in that column.
type Row map[string]string

// Sheet is an in-memory worksheet: ordered headers and one Row per data row.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// ReadSheet reads the named sheet from the workbook at path. headerRow is
// the zero-based index of the header row; rows above it are ignored.
// Columns with a blank header cell, a common spreadsheet artifact, are
// stripped. Rows with every cell blank are skipped.
func ReadSheet(path, sheet string, headerRow int) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) <= headerRow {
		return &Sheet{}, nil
	}

	// Header cells map column index -> name; blank headers drop the column.
	header := rows[headerRow]
	columns := make(map[int]string, len(header))
	headers := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		columns[i] = name
		headers = append(headers, name)
	}

	result := &Sheet{Headers: headers}
	for _, raw := range rows[headerRow+1:] {
		row := make(Row, len(columns))
		empty := true
		for i, name := range columns {
			var value string
			if i < len(raw) {
				value = strings.TrimSpace(raw[i])
			}
			if value != "" {
				empty = false
			}
			row[name] = value
		}
		if empty {
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// scratch sheet inserted so the target sheet can be deleted even when it
// is the only sheet in the workbook.
const scratchSheet = "__rewrite__"

// ReplaceSheet replaces the named sheet's contents with the given header
// and data rows, leaving all other sheets untouched. The updated workbook
// is written to a temp file in the same directory, synced, and renamed
// over the original.
func ReplaceSheet(path, sheet string, headers []string, rows [][]interface{}) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(scratchSheet); err != nil {
		return fmt.Errorf("preparing rewrite of %q: %w", sheet, err)
	}
	if err := f.DeleteSheet(sheet); err != nil {
		return fmt.Errorf("clearing sheet %q: %w", sheet, err)
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("recreating sheet %q: %w", sheet, err)
	}
	if err := f.DeleteSheet(scratchSheet); err != nil {
		return fmt.Errorf("finishing rewrite of %q: %w", sheet, err)
	}

	headerCells := make([]interface{}, len(headers))
	for i, h := range headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return saveAtomic(f, path)
}

// saveAtomic writes the workbook to a temp file next to path, fsyncs it,
// and renames it into place.
func saveAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".workbook-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating temp workbook: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := f.WriteTo(tmp); err != nil {
		cleanup()
		return fmt.Errorf("writing temp workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing temp workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp workbook: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing workbook %s: %w", path, err)
	}
	return nil
}
