package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/EmilIverskog/storageFinder/internal/inventory"
)

const sheetName = "Components"

// SpreadsheetName mirrors FileName with an .xlsx extension.
func SpreadsheetName(t time.Time) string {
	return strings.TrimSuffix(FileName(t), ".json") + ".xlsx"
}

// WriteXLSX writes items as a two-column sheet (id, location) into dir and
// returns the full path.
func WriteXLSX(dir string, now time.Time, items []inventory.Component) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToExport
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", err
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return "", err
	}
	if err := sw.SetColWidth(1, 2, 28); err != nil {
		return "", err
	}
	if err := sw.SetRow("A1", []interface{}{"id", "location"}); err != nil {
		return "", err
	}
	for i, c := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2) // A2, A3, ...
		if err := sw.SetRow(cell, []interface{}{c.ID, c.Location}); err != nil {
			return "", err
		}
	}
	if err := sw.Flush(); err != nil {
		return "", err
	}

	path := filepath.Join(dir, SpreadsheetName(now.Local()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
