// Package export writes console lists as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/frahmantamala/trackit/internal/core/listing"
	"github.com/frahmantamala/trackit/internal/core/locale"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column is one spreadsheet column. Header is looked up as Export.<Header>.
// Enum values are title-cased for the reader's language.
type Column[T any] struct {
	Header string
	Width  float64
	Enum   bool
	Value  func(T) interface{}
}

// Field is a label/value line written above the table.
type Field struct {
	Label string
	Value interface{}
}

type Sheet[T any] struct {
	Name    string
	Fields  []Field
	Columns []Column[T]
	Rows    []T
}

// Write renders sheet as a single-sheet workbook in lang.
func Write[T any](w io.Writer, bundle *locale.Bundle, lang string, sheet Sheet[T]) error {
	f := excelize.NewFile()
	defer f.Close()

	name := bundle.T(lang, "Export.sheet."+sheet.Name, nil)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	row := 1
	for _, field := range sheet.Fields {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		line := []interface{}{bundle.T(lang, "Export."+field.Label, nil), field.Value}
		if err := f.SetSheetRow(name, cell, &line); err != nil {
			return fmt.Errorf("export: write field: %w", err)
		}
		if err := f.SetCellStyle(name, cell, cell, bold); err != nil {
			return err
		}
		row++
	}
	if len(sheet.Fields) > 0 {
		row++
	}

	tag := language.Make(lang)
	headers := make([]interface{}, len(sheet.Columns))
	for i, col := range sheet.Columns {
		headers[i] = bundle.T(lang, "Export."+col.Header, nil)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(sheet.Columns), row)
	if err := f.SetSheetRow(name, first, &headers); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	if err := f.SetCellStyle(name, first, last, bold); err != nil {
		return err
	}

	for _, item := range sheet.Rows {
		row++
		values := make([]interface{}, len(sheet.Columns))
		for i, col := range sheet.Columns {
			v := col.Value(item)
			if s, ok := v.(string); ok && col.Enum {
				v = listing.Title(tag, s)
			}
			values[i] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("export: write row %d: %w", row, err)
		}
	}

	for i, col := range sheet.Columns {
		if col.Width == 0 {
			continue
		}
		c, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, c, c, col.Width); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// Filename builds a dated download name, materiels-2024-05-02.xlsx.
func Filename(base, date string) string {
	return fmt.Sprintf("%s-%s.xlsx", base, date)
}
