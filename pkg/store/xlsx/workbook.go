package xlsx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Serial date bounds accepted by CellDate, roughly 1990 through 2100. Keeps
// plain numbers in a header row from being mistaken for dates.
const (
	minDateSerial = 32874
	maxDateSerial = 73415
)

var headerDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"Jan-06",
	"January 2006",
	time.RFC3339,
}

// Workbook wraps one spreadsheet file. All sheet access in the update
// services goes through this type so cell addressing and style handling
// stay in one place.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open loads an existing workbook.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

// New creates an empty workbook, used by tests to build fixtures.
func New() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

func (w *Workbook) Path() string {
	return w.path
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// SaveAs writes the workbook to path, creating or overwriting it.
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// AddSheet creates a worksheet if it does not already exist.
func (w *Workbook) AddSheet(name string) error {
	_, err := w.f.NewSheet(name)
	return err
}

func (w *Workbook) SheetExists(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// MaxColumn returns the right edge of the sheet's used range, 0 for an
// empty or unknown sheet.
func (w *Workbook) MaxColumn(sheet string) int {
	dim, err := w.f.GetSheetDimension(sheet)
	if err != nil || dim == "" {
		return 0
	}
	if idx := strings.Index(dim, ":"); idx >= 0 {
		dim = dim[idx+1:]
	}
	col, _, err := excelize.CellNameToCoordinates(dim)
	if err != nil {
		return 0
	}
	return col
}

// CellString returns the formatted value of a cell.
func (w *Workbook) CellString(sheet string, col, row int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	v, err := w.f.GetCellValue(sheet, cell)
	if err != nil {
		return "", fmt.Errorf("read %s!%s: %w", sheet, cell, err)
	}
	return v, nil
}

// CellFloat returns a cell's raw numeric value. The raw value avoids number
// formats, so "$211.15" on the sheet still reads as 211.15.
func (w *Workbook) CellFloat(sheet string, col, row int) (float64, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, false
	}
	raw, err := w.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CellDate reads a header cell as a calendar date. Handles serial date
// cells as well as text headers like "2026-01-01" or "Jan-26".
func (w *Workbook) CellDate(sheet string, col, row int) (time.Time, bool) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return time.Time{}, false
	}
	raw, err := w.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return time.Time{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial < minDateSerial || serial > maxDateSerial {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, layout := range headerDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (w *Workbook) SetString(sheet string, col, row int, value string) error {
	return w.setValue(sheet, col, row, value)
}

func (w *Workbook) SetFloat(sheet string, col, row int, value float64) error {
	return w.setValue(sheet, col, row, value)
}

func (w *Workbook) SetDate(sheet string, col, row int, value time.Time) error {
	return w.setValue(sheet, col, row, value)
}

func (w *Workbook) setValue(sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// StyleID returns the cell's style handle. Copying the handle to another
// cell carries the full format: fill, borders, fonts and number format.
func (w *Workbook) StyleID(sheet string, col, row int) (int, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, err
	}
	id, err := w.f.GetCellStyle(sheet, cell)
	if err != nil {
		return 0, fmt.Errorf("read style %s!%s: %w", sheet, cell, err)
	}
	return id, nil
}

// SetStyleID applies a style handle to one cell.
func (w *Workbook) SetStyleID(sheet string, col, row, styleID int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("write style %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// HasFill reports whether the style paints a pattern fill.
func (w *Workbook) HasFill(styleID int) bool {
	st, err := w.f.GetStyle(styleID)
	if err != nil || st == nil {
		return false
	}
	return st.Fill.Type == "pattern" && st.Fill.Pattern > 0
}

// FillColor returns the style's solid fill color as an RGB hex string.
func (w *Workbook) FillColor(styleID int) (string, bool) {
	st, err := w.f.GetStyle(styleID)
	if err != nil || st == nil || len(st.Fill.Color) == 0 {
		return "", false
	}
	color := strings.ToUpper(st.Fill.Color[0])
	if len(color) == 8 {
		// ARGB, drop the alpha channel
		color = color[2:]
	}
	return color, true
}

// SolidFill returns a style handle that paints the cell with the given RGB
// color, e.g. "D9E2F3".
func (w *Workbook) SolidFill(rgb string) (int, error) {
	id, err := w.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{rgb}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("create fill style %s: %w", rgb, err)
	}
	return id, nil
}

// FillOverride returns a copy of the base style with its fill replaced by a
// solid RGB color. Number formats and borders carry over.
func (w *Workbook) FillOverride(base int, rgb string) (int, error) {
	st, err := w.f.GetStyle(base)
	if err != nil || st == nil {
		st = &excelize.Style{}
	}
	st.Fill = excelize.Fill{Type: "pattern", Color: []string{rgb}, Pattern: 1}
	id, err := w.f.NewStyle(st)
	if err != nil {
		return 0, fmt.Errorf("create fill override %s: %w", rgb, err)
	}
	return id, nil
}

// FirstEmptyRow scans a column downward from startRow and returns the first
// row whose cell is blank.
func (w *Workbook) FirstEmptyRow(sheet string, col, startRow int) (int, error) {
	for row := startRow; ; row++ {
		v, err := w.CellString(sheet, col, row)
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(v) == "" {
			return row, nil
		}
	}
}
