package wsr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

// RollupRequest describes one monthly rollup of the weekly report.
type RollupRequest struct {
	Period domain.Period
	// Path is the workbook to roll up.
	Path string
	// OutputPath defaults to saving in place.
	OutputPath string
	// DryRun computes the ledger rows without writing them.
	DryRun bool
}

// employeeLine is one employee's detail sheet row with the contract
// metadata the ledger needs.
type employeeLine struct {
	name     string
	row      int
	plc      string
	clin     string
	detail   string
	wbs      string
	chargeNo string
	rate     float64
}

// Rollup sums each employee's hours across the month's Actual weeks and
// appends one ledger row per employee who billed time. Weeks still marked
// as estimates are skipped; weeks whose column cannot be found are counted
// and reported but do not fail the rollup.
func (s *Service) Rollup(ctx context.Context, req RollupRequest) (*domain.RollupResult, error) {
	logger := zerolog.Ctx(ctx)

	wb, err := xlsx.Open(req.Path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if !wb.SheetExists(s.layout.DetailSheet) {
		return nil, &domain.ConfigRefError{Report: "WSR", Ref: fmt.Sprintf("sheet %q", s.layout.DetailSheet)}
	}
	if !wb.SheetExists(s.layout.LedgerSheet) {
		return nil, &domain.ConfigRefError{Report: "WSR", Ref: fmt.Sprintf("sheet %q", s.layout.LedgerSheet)}
	}

	lines, err := s.readEmployeeLines(wb)
	if err != nil {
		return nil, err
	}

	result := &domain.RollupResult{Period: req.Period}
	totals := map[string]float64{}

	for _, week := range domain.WeeksInMonth(req.Period) {
		col, _, err := msr.FindWeekColumn(wb, s.layout.DetailSheet, s.layout.DateHeaderRow, s.layout.Scan, week)
		if err != nil {
			if errors.Is(err, domain.ErrColumnNotFound) {
				result.WeeksMissing++
				logger.Warn().Str("week", week.Label()).Msg("week column not found, skipped")
				continue
			}
			return nil, err
		}

		status, err := wb.CellString(s.layout.DetailSheet, col, s.layout.StatusRow)
		if err != nil {
			return nil, err
		}
		if status != msr.StatusActual {
			result.WeeksSkipped++
			logger.Info().Str("week", week.Label()).Str("status", status).Msg("week not marked actual, skipped")
			continue
		}

		result.WeeksRolled++
		for _, line := range lines {
			if hours, ok := wb.CellFloat(s.layout.DetailSheet, col, line.row); ok {
				totals[line.name] += hours
			}
		}
	}

	nextRow, err := wb.FirstEmptyRow(s.layout.LedgerSheet, 1, 2)
	if err != nil {
		return nil, err
	}
	monthLabel := fmt.Sprintf("%s %d", req.Period.MonthName(), req.Period.Year)

	for _, line := range lines {
		hours := totals[line.name]
		result.TotalHours += hours
		if hours <= 0 {
			continue
		}

		rate := line.rate
		if rate == 0 {
			rate = s.rates.GetEmployeeRate(ctx, line.name).PerHour
		}
		cost := hours * rate

		row := domain.LedgerRow{
			Row:      nextRow,
			Company:  s.company,
			ChargeNo: line.chargeNo,
			Employee: line.name,
			CLIN:     line.clin,
			PLC:      line.plc,
			Rate:     rate,
			WBS:      line.wbs,
			Detail:   line.detail,
			Hours:    hours,
			Cost:     cost,
			Month:    monthLabel,
		}
		if !req.DryRun {
			if err := s.writeLedgerRow(wb, row); err != nil {
				return nil, err
			}
		}
		result.Rows = append(result.Rows, row)
		result.TotalCost += cost
		nextRow++
	}

	if req.DryRun {
		return result, nil
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = req.Path
	}
	if err := wb.SaveAs(outputPath); err != nil {
		return nil, err
	}
	result.OutputPath = outputPath

	logger.Info().
		Str("month", monthLabel).
		Int("rows", len(result.Rows)).
		Float64("hours", result.TotalHours).
		Float64("cost", result.TotalCost).
		Str("output", outputPath).
		Msg("monthly rollup appended")
	return result, nil
}

func (s *Service) readEmployeeLines(wb *xlsx.Workbook) ([]employeeLine, error) {
	var lines []employeeLine
	for _, row := range s.layout.EmployeeRows {
		name, err := s.employeeAt(wb, row)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}

		read := func(col int) string {
			if col < 1 {
				return ""
			}
			v, _ := wb.CellString(s.layout.DetailSheet, col, row)
			return strings.TrimSpace(v)
		}
		rate, _ := wb.CellFloat(s.layout.DetailSheet, s.layout.RateCol, row)

		lines = append(lines, employeeLine{
			name:     name,
			row:      row,
			plc:      read(s.layout.PLCCol),
			clin:     read(s.layout.CLINCol),
			detail:   read(s.layout.DetailCol),
			wbs:      read(s.layout.WBSCol),
			chargeNo: read(s.layout.ChargeNoCol),
			rate:     rate,
		})
	}
	return lines, nil
}

// writeLedgerRow fills columns A through K of one ledger line.
func (s *Service) writeLedgerRow(wb *xlsx.Workbook, row domain.LedgerRow) error {
	values := []any{
		row.Company, row.ChargeNo, row.Employee, row.CLIN, row.PLC,
		row.Rate, row.WBS, row.Detail, row.Hours, row.Cost, row.Month,
	}
	for i, v := range values {
		col := i + 1
		var err error
		switch tv := v.(type) {
		case string:
			err = wb.SetString(s.layout.LedgerSheet, col, row.Row, tv)
		case float64:
			err = wb.SetFloat(s.layout.LedgerSheet, col, row.Row, tv)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
