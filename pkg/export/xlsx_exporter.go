package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders datasets into spreadsheet workbooks and reads
// workbooks back into datasets, one sheet per dataset.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces a workbook with one sheet per section.
func (e *XLSXExporter) Render(sections []Section) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one section")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, section := range sections {
		name := section.Title
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", name, err)
			}
		}

		header := make([]interface{}, len(section.Data.Headers))
		for j, h := range section.Data.Headers {
			header[j] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header row: %w", err)
		}

		for r, row := range section.Data.Rows {
			record := make([]interface{}, len(section.Data.Headers))
			for j, h := range section.Data.Headers {
				record[j] = row[h]
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, fmt.Errorf("resolve cell: %w", err)
			}
			if err := f.SetSheetRow(name, cell, &record); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads the first sheet of a workbook into a Dataset, taking the first
// row as the header.
func (e *XLSXExporter) Parse(reader io.Reader) (Dataset, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Dataset{}, fmt.Errorf("workbook contains no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Dataset{}, fmt.Errorf("sheet %s is empty", sheet)
	}

	data := Dataset{Headers: rows[0]}
	for _, record := range rows[1:] {
		row := make(map[string]string, len(data.Headers))
		for i, header := range data.Headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}
