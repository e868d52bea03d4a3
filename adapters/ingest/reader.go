// Package ingest turns CSV and Excel tables into the numeric shapes the
// analysis engine consumes: samples, grouped samples, and dense
// subjects-by-conditions matrices. The engine itself never touches files.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"goinfer/domain/core"
	"goinfer/domain/stats"
)

// TableData is a raw table: a header row plus string cells.
type TableData struct {
	Headers []string
	Rows    [][]string
}

// DataReader reads CSV and XLSX files into TableData.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given file, dispatching on extension.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadData reads the file into structured form.
func (r *DataReader) ReadData() (*TableData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readCSV() (*TableData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return buildTable(rows)
}

func (r *DataReader) readExcel() (*TableData, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return buildTable(rows)
}

func buildTable(rows [][]string) (*TableData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("table must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return &TableData{Headers: headers, Rows: rows[1:]}, nil
}

// ColumnIndex returns the position of a named column.
func (t *TableData) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// StringColumn returns the raw cells of a named column. Rows too short to
// reach the column contribute empty strings.
func (t *TableData) StringColumn(name string) ([]string, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, core.NewInvalidParameterError("column", fmt.Sprintf("%q not found", name))
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = strings.TrimSpace(row[idx])
		}
	}
	return values, nil
}

// NumericColumn extracts a named column as a Sample. Cells that do not parse
// as numbers (including blanks) are skipped, mirroring how the activity
// exports mix notes into numeric columns.
func (t *TableData) NumericColumn(name string) (stats.Sample, error) {
	raw, err := t.StringColumn(name)
	if err != nil {
		return nil, err
	}

	sample := make(stats.Sample, 0, len(raw))
	for _, cell := range raw {
		if v, ok := parseNumber(cell); ok {
			sample = append(sample, v)
		}
	}
	return sample, nil
}

// NumericColumnNames returns the headers whose columns are predominantly
// numeric, preserving header order.
func (t *TableData) NumericColumnNames() []string {
	var names []string
	for _, h := range t.Headers {
		raw, err := t.StringColumn(h)
		if err != nil {
			continue
		}
		parsed, nonEmpty := 0, 0
		for _, cell := range raw {
			if cell == "" {
				continue
			}
			nonEmpty++
			if _, ok := parseNumber(cell); ok {
				parsed++
			}
		}
		if nonEmpty > 0 && parsed*2 > nonEmpty {
			names = append(names, h)
		}
	}
	return names
}

func parseNumber(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}
	// Exports sometimes carry thousands separators.
	cell = strings.ReplaceAll(cell, ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
