package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet as a grid of raw cell values. Rows may be ragged;
// missing trailing cells read as empty.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook holds every sheet of an uploaded file, in workbook order.
type Workbook struct {
	Sheets []Sheet
}

// ReadWorkbook parses an xlsx stream fully into memory. Cells are read as
// raw values so date cells surface as their serial numbers rather than a
// display format.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: rows})
	}
	return wb, nil
}

// cell returns the raw value at idx, or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
