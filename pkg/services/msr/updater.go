package msr

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

// StatusActual marks a period column as billed actuals rather than an
// estimate.
const StatusActual = "Actual"

// UpdateRequest carries everything needed to update one report workbook.
type UpdateRequest struct {
	Definition Definition
	Period     domain.Period
	Hours      domain.AggregatedHours
	Mappings   config.EmployeeMappings
}

// Update writes the period's hours into the workbook. Every sheet of the
// definition gets its status marker, styling and hour cells; hours are
// written even when zero so a rerun overwrites stale values. The workbook
// is modified in memory, saving is the caller's job.
func Update(ctx context.Context, wb *xlsx.Workbook, req UpdateRequest) (*domain.UpdateResult, error) {
	logger := zerolog.Ctx(ctx)
	def := req.Definition

	result := &domain.UpdateResult{ReportID: def.ID, Period: req.Period}
	for _, layout := range def.Sheets {
		sheet, err := updateSheet(wb, def, layout, req)
		if err != nil {
			return nil, err
		}
		result.Sheets = append(result.Sheets, sheet.summary)
		result.Updates = append(result.Updates, sheet.updates...)
		result.TotalHours += sheet.summary.Hours

		logger.Debug().
			Str("report", def.ID).
			Str("sheet", layout.Name).
			Int("column", sheet.summary.Column).
			Float64("hours", sheet.summary.Hours).
			Msg("sheet updated")
	}
	return result, nil
}

type sheetResult struct {
	summary domain.SheetUpdate
	updates []domain.CellUpdate
}

func updateSheet(wb *xlsx.Workbook, def Definition, layout SheetLayout, req UpdateRequest) (*sheetResult, error) {
	if !wb.SheetExists(layout.Name) {
		return nil, &domain.ConfigRefError{Report: def.ID, Ref: fmt.Sprintf("sheet %q", layout.Name)}
	}

	col, err := FindMonthColumn(wb, layout.Name, layout.DateHeaderRow, def.Scan, req.Period)
	if err != nil {
		return nil, err
	}
	if col < 2 {
		return nil, fmt.Errorf("report %s: sheet %q: period column %d has no previous column to copy styles from", def.ID, layout.Name, col)
	}
	prev := col - 1

	statusStyle, err := wb.StyleID(layout.Name, prev, layout.StatusRow)
	if err != nil {
		return nil, err
	}
	if def.FallbackFill != "" && !wb.HasFill(statusStyle) {
		statusStyle, err = wb.SolidFill(def.FallbackFill)
		if err != nil {
			return nil, err
		}
	}
	if err := wb.SetStyleID(layout.Name, col, layout.StatusRow, statusStyle); err != nil {
		return nil, err
	}
	if err := wb.SetString(layout.Name, col, layout.StatusRow, StatusActual); err != nil {
		return nil, err
	}

	if layout.HasFillRange() {
		for row := layout.FillFromRow; row <= layout.FillToRow; row++ {
			if err := wb.SetStyleID(layout.Name, col, row, statusStyle); err != nil {
				return nil, err
			}
		}
	}

	res := &sheetResult{}
	for _, name := range req.Mappings.Names() {
		emp := req.Mappings.Employees[name]
		if !emp.OnReport(def.ID) {
			continue
		}
		for _, code := range emp.CodeNames() {
			mapping := emp.ChargeCodes[code]
			if mapping.Report != def.ID {
				continue
			}
			if mapping.Sheet != "" && mapping.Sheet != layout.Name {
				continue
			}
			if def.MultiSheet() && mapping.Sheet == "" {
				continue
			}
			if mapping.Row < 1 {
				return nil, &domain.ConfigRefError{
					Report: def.ID,
					Ref:    fmt.Sprintf("row %d for %s / %s", mapping.Row, name, code),
				}
			}

			hours := req.Hours.Get(name, code)
			if err := styleHourCell(wb, def, layout, col, prev, mapping.Row); err != nil {
				return nil, err
			}
			if err := wb.SetFloat(layout.Name, col, mapping.Row, hours); err != nil {
				return nil, err
			}

			res.summary.Hours += hours
			res.updates = append(res.updates, domain.CellUpdate{
				Sheet:      layout.Name,
				Row:        mapping.Row,
				Column:     col,
				Employee:   name,
				ChargeCode: code,
				Hours:      hours,
			})
		}
	}

	if layout.TotalRow > 0 {
		totalStyle, err := wb.StyleID(layout.Name, prev, layout.TotalRow)
		if err != nil {
			return nil, err
		}
		if err := wb.SetStyleID(layout.Name, col, layout.TotalRow, totalStyle); err != nil {
			return nil, err
		}
		if err := wb.SetFloat(layout.Name, col, layout.TotalRow, res.summary.Hours); err != nil {
			return nil, err
		}
	}

	res.summary.Sheet = layout.Name
	res.summary.Column = col
	return res, nil
}

// styleHourCell picks the format for one hour cell. A constant highlight
// wins; sheets with a fill range already painted the column, so the value
// lands without restyling; otherwise the previous column's style carries
// over, with the fallback fill covering unfilled cells.
func styleHourCell(wb *xlsx.Workbook, def Definition, layout SheetLayout, col, prev, row int) error {
	if def.Highlight != "" {
		style, err := wb.SolidFill(def.Highlight)
		if err != nil {
			return err
		}
		return wb.SetStyleID(layout.Name, col, row, style)
	}
	if layout.HasFillRange() {
		return nil
	}

	style, err := wb.StyleID(layout.Name, prev, row)
	if err != nil {
		return err
	}
	if def.FallbackFill != "" && !wb.HasFill(style) {
		style, err = wb.SolidFill(def.FallbackFill)
		if err != nil {
			return err
		}
	}
	return wb.SetStyleID(layout.Name, col, row, style)
}
