package msr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

// RunRequest describes one orchestrated monthly update.
type RunRequest struct {
	Period domain.Period
	// Reports are the ids to update; empty means every registered report.
	Reports []string
	// Files overrides discovery with explicit input paths per report id.
	Files map[string]string
	// OutputDir overrides the default completed/<year>/<MM-Mon> target.
	OutputDir string
	// DryRun resolves files and period columns without writing anything.
	DryRun bool
}

// Orchestrator runs the monthly update across the configured reports.
type Orchestrator struct {
	registry Registry
	finder   *Finder
	source   timesheet.Source
	mappings config.EmployeeMappings
	aggOpts  timesheet.Options
}

func NewOrchestrator(
	registry Registry,
	finder *Finder,
	source timesheet.Source,
	mappings config.EmployeeMappings,
	aggOpts timesheet.Options,
) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		finder:   finder,
		source:   source,
		mappings: mappings,
		aggOpts:  aggOpts,
	}
}

// Run updates every requested report for the period. Input files are all
// resolved before any workbook is touched; a report that cannot be found
// fails the whole run. Once updating starts, a failing report only marks
// its own outcome and the rest continue.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*domain.RunResult, error) {
	logger := zerolog.Ctx(ctx)

	ids := req.Reports
	if len(ids) == 0 {
		ids = o.registry.ListReports()
	}
	defs := make([]Definition, 0, len(ids))
	for _, id := range ids {
		def, err := o.registry.Get(id)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	paths := map[string]string{}
	var missing []string
	for _, def := range defs {
		if p, ok := req.Files[def.ID]; ok && p != "" {
			paths[def.ID] = p
			continue
		}
		p, err := o.finder.FindReport(def, req.Period)
		if err != nil {
			missing = append(missing, def.ID)
			continue
		}
		paths[def.ID] = p
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, strings.Join(missing, ", "))
	}

	entries, err := o.source.FetchMonth(ctx, req.Period)
	if err != nil {
		return nil, fmt.Errorf("fetch timesheets for %s: %w", req.Period.Display(), err)
	}
	hours := timesheet.Aggregate(entries, o.aggOpts)

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = o.finder.OutputDir(req.Period)
	}
	if !req.DryRun {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
		}
	}

	result := &domain.RunResult{
		Period:     req.Period,
		OutputDir:  outputDir,
		Employees:  len(hours),
		TotalHours: hours.Total(),
		DryRun:     req.DryRun,
	}

	for _, def := range defs {
		outcome := o.updateOne(ctx, def, paths[def.ID], outputDir, hours, req)
		if outcome.Failed() {
			logger.Error().
				Str("report", def.ID).
				Str("source", outcome.Source).
				Str("error", outcome.Err).
				Msg("report update failed")
		} else {
			logger.Info().
				Str("report", def.ID).
				Float64("hours", outcome.Result.TotalHours).
				Str("output", outcome.Result.OutputPath).
				Msg("report updated")
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result, nil
}

func (o *Orchestrator) updateOne(
	ctx context.Context,
	def Definition,
	inputPath, outputDir string,
	hours domain.AggregatedHours,
	req RunRequest,
) domain.ReportOutcome {
	outcome := domain.ReportOutcome{ReportID: def.ID, Source: inputPath}

	wb, err := xlsx.Open(inputPath)
	if err != nil {
		outcome.Err = err.Error()
		return outcome
	}
	defer wb.Close()

	if req.DryRun {
		res := &domain.UpdateResult{ReportID: def.ID, Period: req.Period}
		for _, layout := range def.Sheets {
			if !wb.SheetExists(layout.Name) {
				outcome.Err = (&domain.ConfigRefError{Report: def.ID, Ref: fmt.Sprintf("sheet %q", layout.Name)}).Error()
				return outcome
			}
			col, err := FindMonthColumn(wb, layout.Name, layout.DateHeaderRow, def.Scan, req.Period)
			if err != nil {
				outcome.Err = err.Error()
				return outcome
			}
			res.Sheets = append(res.Sheets, domain.SheetUpdate{Sheet: layout.Name, Column: col})
		}
		outcome.Result = res
		return outcome
	}

	res, err := Update(ctx, wb, UpdateRequest{
		Definition: def,
		Period:     req.Period,
		Hours:      hours,
		Mappings:   o.mappings,
	})
	if err != nil {
		outcome.Err = err.Error()
		return outcome
	}

	outputPath := filepath.Join(outputDir, fmt.Sprintf("%s_MSR_%s.xlsx", def.ID, req.Period.Display()))
	if err := wb.SaveAs(outputPath); err != nil {
		outcome.Err = err.Error()
		return outcome
	}
	res.OutputPath = outputPath
	outcome.Result = res
	return outcome
}
