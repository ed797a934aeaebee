// Package tabular loads tabular input (CSV, XLSX, SQL query results) into
// the typed column representation the analysis pipeline consumes.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"edareport/domain/dataset"
	"edareport/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader handles reading CSV and XLSX files.
type Reader struct {
	filePath string
	fileType string // "csv" or "xlsx"

	// Headerless marks the first row as data; column names are then
	// auto-generated as var_1, var_2, ...
	Headerless bool
}

// NewReader creates a reader for the given file, picking the format from the
// extension. Anything that is not .xlsx is read as CSV.
func NewReader(filePath string) *Reader {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a typed table.
func (r *Reader) Read() (dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return dataset.Table{}, errors.Newf(errors.CodeInputError, "input file not found: %s", r.filePath)
	}

	var records [][]string
	var err error
	switch r.fileType {
	case "xlsx":
		records, err = r.readXLSX()
	default:
		records, err = r.readCSV()
	}
	if err != nil {
		return dataset.Table{}, err
	}

	return FromRecords(records, !r.Headerless)
}

func (r *Reader) readCSV() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening CSV file %s", r.filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "parsing CSV file %s", r.filePath)
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *Reader) readXLSX() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening XLSX file %s", r.filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.Newf(errors.CodeInputError, "XLSX file %s has no sheets", r.filePath)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheets[0])
	}
	return rows, nil
}

// FromRecords assembles a typed table from row-major string records. When
// hasHeader is false, or header cells are blank, column names are
// auto-generated as var_1, var_2, ... Ragged rows are padded with missing
// markers. Columns that are entirely empty are dropped.
func FromRecords(records [][]string, hasHeader bool) (dataset.Table, error) {
	if len(records) == 0 {
		return dataset.Table{}, errors.New(errors.CodeEmptyData, "no data to process")
	}

	width := 0
	for _, row := range records {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return dataset.Table{}, errors.New(errors.CodeEmptyData, "no data to process")
	}

	var names []string
	body := records
	if hasHeader {
		names = records[0]
		body = records[1:]
	}
	if len(body) == 0 {
		return dataset.Table{}, errors.New(errors.CodeEmptyData, "no data to process")
	}

	var tbl dataset.Table
	for c := 0; c < width; c++ {
		raw := make([]string, len(body))
		for rIdx, row := range body {
			if c < len(row) {
				raw[rIdx] = row[c]
			}
		}

		name := ""
		if c < len(names) {
			name = strings.TrimSpace(names[c])
		}
		if name == "" {
			name = fmt.Sprintf("var_%d", c+1)
		}

		col := CoerceColumn(name, raw)
		if col.MissingCount() == col.Len() {
			// Completely empty columns carry no information.
			continue
		}
		tbl.Columns = append(tbl.Columns, col)
	}

	if len(tbl.Columns) == 0 {
		return dataset.Table{}, errors.New(errors.CodeEmptyData, "no data to process")
	}
	return tbl, nil
}

// FromSlice treats a one-dimensional sequence as a single-column table with
// the given name. An empty name falls back to the auto-generated var_1.
func FromSlice(name string, values []string) (dataset.Table, error) {
	records := make([][]string, 0, len(values)+1)
	records = append(records, []string{name})
	for _, v := range values {
		records = append(records, []string{v})
	}
	return FromRecords(records, true)
}
