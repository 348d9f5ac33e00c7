package wsr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

// WeeklyRequest describes one weekly detail update.
type WeeklyRequest struct {
	Week domain.Week
	// Path is the workbook to update.
	Path string
	// OutputPath overrides the default completed/<year>/Q<q> target.
	OutputPath string
	// DryRun fetches hours and resolves the week column without writing.
	DryRun bool
}

// Weekly writes one week's tracked hours into the detail sheet. The week's
// column gets the Actual marker; each employee row copies the previous
// week's format with the highlight fill on top. Hours cover all tracked
// time, leave included, since the weekly report bills the full week.
func (s *Service) Weekly(ctx context.Context, req WeeklyRequest) (*domain.WeeklyUpdate, error) {
	logger := zerolog.Ctx(ctx)

	entries, err := s.source.FetchRange(ctx, req.Week.Start, req.Week.End)
	if err != nil {
		return nil, fmt.Errorf("fetch timesheets for week %s: %w", req.Week.Label(), err)
	}
	totals := timesheet.EmployeeTotals(entries)

	wb, err := xlsx.Open(req.Path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if !wb.SheetExists(s.layout.DetailSheet) {
		return nil, &domain.ConfigRefError{Report: "WSR", Ref: fmt.Sprintf("sheet %q", s.layout.DetailSheet)}
	}

	col, conf, err := msr.FindWeekColumn(wb, s.layout.DetailSheet, s.layout.DateHeaderRow, s.layout.Scan, req.Week)
	if err != nil {
		return nil, err
	}
	if conf == msr.Unconfirmed {
		logger.Warn().
			Str("week", req.Week.Label()).
			Int("column", col).
			Msg("week column matched without a year total nearby")
	}

	update := &domain.WeeklyUpdate{
		Week:      req.Week,
		Column:    col,
		Confirmed: conf == msr.Confirmed,
		Hours:     map[string]float64{},
	}

	for _, row := range s.layout.EmployeeRows {
		name, err := s.employeeAt(wb, row)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}
		hours := totals[name]
		update.Hours[name] = hours
		update.TotalHours += hours

		if req.DryRun {
			continue
		}

		style, err := wb.StyleID(s.layout.DetailSheet, col-1, row)
		if err != nil {
			return nil, err
		}
		if s.layout.Highlight != "" {
			style, err = wb.FillOverride(style, s.layout.Highlight)
			if err != nil {
				return nil, err
			}
		}
		if err := wb.SetStyleID(s.layout.DetailSheet, col, row, style); err != nil {
			return nil, err
		}
		if err := wb.SetFloat(s.layout.DetailSheet, col, row, hours); err != nil {
			return nil, err
		}
	}

	if req.DryRun {
		return update, nil
	}

	if err := wb.SetString(s.layout.DetailSheet, col, s.layout.StatusRow, msr.StatusActual); err != nil {
		return nil, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = s.finder.WeeklyOutputPath(req.Week)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := wb.SaveAs(outputPath); err != nil {
		return nil, err
	}
	update.OutputPath = outputPath

	logger.Info().
		Str("week", req.Week.Label()).
		Int("column", col).
		Float64("hours", update.TotalHours).
		Str("output", outputPath).
		Msg("weekly report updated")
	return update, nil
}

// employeeAt reads the employee name from the detail sheet row. Header
// leftovers read as empty.
func (s *Service) employeeAt(wb *xlsx.Workbook, row int) (string, error) {
	name, err := wb.CellString(s.layout.DetailSheet, s.layout.NameCol, row)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "Employee" {
		return "", nil
	}
	return name, nil
}
