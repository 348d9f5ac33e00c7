package msr

import (
	"fmt"

	"github.com/vertekal/msrsync/pkg/services/config"
)

// SheetLayout describes the fixed cells of one sheet in a report workbook.
type SheetLayout struct {
	Name          string
	StatusRow     int
	DateHeaderRow int
	// TotalRow receives the sheet's hour total, 0 when the sheet has none.
	TotalRow int
	// FillFromRow and FillToRow bound the rows painted with the status
	// style, 0 when the sheet has no fill range.
	FillFromRow int
	FillToRow   int
}

func (l SheetLayout) HasFillRange() bool {
	return l.FillFromRow > 0 && l.FillToRow >= l.FillFromRow
}

func (l SheetLayout) validate() error {
	if l.Name == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}
	if l.StatusRow < 1 {
		return fmt.Errorf("sheet %q: status row must be positive", l.Name)
	}
	if l.DateHeaderRow < 1 {
		return fmt.Errorf("sheet %q: date header row must be positive", l.Name)
	}
	if l.FillFromRow > 0 && l.FillToRow < l.FillFromRow {
		return fmt.Errorf("sheet %q: fill range %d..%d is not ordered", l.Name, l.FillFromRow, l.FillToRow)
	}
	return nil
}

// Definition is the compiled update plan for one report type. All five
// report variants run through the same engine, parameterized by this type.
type Definition struct {
	ID     string
	Sheets []SheetLayout
	// FallbackFill paints the status column when the previous column has
	// no fill of its own. Empty disables the fallback.
	FallbackFill string
	// Highlight is a constant fill applied to every hour cell instead of
	// copying the previous column's style. Empty disables it.
	Highlight string
	// FilePatterns are the case-insensitive substrings matched during file
	// discovery.
	FilePatterns []string
	Scan         ColumnScan
}

// MultiSheet reports whether the definition spans more than one sheet, in
// which case charge code mappings must name their sheet.
func (d Definition) MultiSheet() bool {
	return len(d.Sheets) > 1
}

// CompileDefinition validates report settings into a Definition.
func CompileDefinition(r config.Report) (Definition, error) {
	if r.ID == "" {
		return Definition{}, fmt.Errorf("report id cannot be empty")
	}
	if len(r.Sheets) == 0 {
		return Definition{}, fmt.Errorf("report %s: at least one sheet is required", r.ID)
	}

	def := Definition{
		ID:           r.ID,
		FallbackFill: r.FallbackFill,
		Highlight:    r.Highlight,
		FilePatterns: r.FilePatterns,
		Scan:         ColumnScan{From: r.ScanFrom, To: r.ScanTo},
	}
	for _, s := range r.Sheets {
		layout := SheetLayout{
			Name:          s.Name,
			StatusRow:     s.StatusRow,
			DateHeaderRow: s.DateHeaderRow,
			TotalRow:      s.TotalRow,
			FillFromRow:   s.FillFromRow,
			FillToRow:     s.FillToRow,
		}
		if err := layout.validate(); err != nil {
			return Definition{}, fmt.Errorf("report %s: %w", r.ID, err)
		}
		def.Sheets = append(def.Sheets, layout)
	}
	if len(def.FilePatterns) == 0 {
		def.FilePatterns = []string{r.ID}
	}
	return def, nil
}
