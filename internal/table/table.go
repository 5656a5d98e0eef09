// Package table loads the rectangular string tables the pipeline
// consumes: CSV and XLSX files, multiple files per logical source, and
// column addressing by fixed position or by header name.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when an input file is not CSV or XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table is one logical source: a header row plus data rows. Every data
// row is padded or truncated to the header width, and rows with no
// non-blank cell are dropped.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table carries no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ReadFile parses a single CSV or XLSX file into a Table. Any parse
// failure aborts the caller's run; partial tables are never returned.
func ReadFile(path string) (Table, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(payload) == 0 {
		return Table{}, fmt.Errorf("file %s is empty", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx":
		return parseExcel(payload)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ReadAll reads every file of a logical source and concatenates the
// data rows under the first file's header.
func ReadAll(paths []string) (Table, error) {
	if len(paths) == 0 {
		return Table{}, nil
	}
	combined, err := ReadFile(paths[0])
	if err != nil {
		return Table{}, err
	}
	for _, path := range paths[1:] {
		next, err := ReadFile(path)
		if err != nil {
			return Table{}, err
		}
		for _, row := range next.Rows {
			combined.Rows = append(combined.Rows, padRow(row, len(combined.Headers)))
		}
	}
	return combined, nil
}

func parseCSV(payload []byte) (Table, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	return normalizeTable(records)
}

func parseExcel(payload []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read rows from xlsx: %w", err)
	}
	return normalizeTable(rows)
}

// normalizeTable takes the first non-empty row as the header and pads
// every data row to the header width.
func normalizeTable(records [][]string) (Table, error) {
	var headers []string
	var dataRows [][]string

	for _, row := range records {
		if isEmptyRow(row) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(row))
			for i, cell := range row {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}
		dataRows = append(dataRows, padRow(row, len(headers)))
	}

	if headers == nil {
		return Table{}, errors.New("no header row detected")
	}
	return Table{Headers: headers, Rows: dataRows}, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}

// Cell returns the value at idx, or the empty string for unbound (-1)
// and out-of-range indices.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
