// Package importer parses uploaded spreadsheet files into sheets usable for
// column mapping. Format is detected from the file content, not the filename
// extension.
package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"certcraft/api-gateway/models"
)

// ParseError indicates the uploaded bytes are not a recognizable workbook.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a recognizable spreadsheet file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a workbook and returns its sheets in workbook order. For each
// sheet the first row becomes the column headers, exactly as uploaded, and
// the remaining rows become the data. Sheets whose first row is empty are
// dropped.
func Parse(r io.Reader) ([]models.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	defer f.Close()

	var sheets []models.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if len(rows) == 0 || len(rows[0]) == 0 {
			continue
		}
		sheets = append(sheets, models.Sheet{
			Name:    name,
			Columns: rows[0],
			Rows:    rows[1:],
		})
	}
	return sheets, nil
}

// AutoSelect returns the name of the only sheet when exactly one was parsed.
// With zero or multiple sheets the caller has to ask the user to pick one.
func AutoSelect(sheets []models.Sheet) string {
	if len(sheets) == 1 {
		return sheets[0].Name
	}
	return ""
}
