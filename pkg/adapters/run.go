package adapters

import (
	"github.com/vertekal/msrsync/pkg/models/api"
	"github.com/vertekal/msrsync/pkg/models/domain"
)

func MapCellUpdateDomainToApi(u domain.CellUpdate) api.CellUpdate {
	return api.CellUpdate{
		Sheet:      u.Sheet,
		Row:        u.Row,
		Column:     u.Column,
		Employee:   u.Employee,
		ChargeCode: u.ChargeCode,
		Hours:      u.Hours,
	}
}

func MapSheetUpdateDomainToApi(u domain.SheetUpdate) api.SheetUpdate {
	return api.SheetUpdate{
		Sheet:  u.Sheet,
		Column: u.Column,
		Hours:  u.Hours,
	}
}

func MapUpdateResultDomainToApi(r domain.UpdateResult) api.UpdateResult {
	res := api.UpdateResult{
		ReportId:   r.ReportID,
		Period:     r.Period.Display(),
		Sheets:     make([]api.SheetUpdate, 0, len(r.Sheets)),
		Updates:    make([]api.CellUpdate, 0, len(r.Updates)),
		TotalHours: r.TotalHours,
		OutputPath: r.OutputPath,
	}
	for _, s := range r.Sheets {
		res.Sheets = append(res.Sheets, MapSheetUpdateDomainToApi(s))
	}
	for _, u := range r.Updates {
		res.Updates = append(res.Updates, MapCellUpdateDomainToApi(u))
	}
	return res
}

func MapReportOutcomeDomainToApi(o domain.ReportOutcome) api.ReportOutcome {
	res := api.ReportOutcome{
		ReportId: o.ReportID,
		Source:   o.Source,
		Error:    o.Err,
	}
	if o.Result != nil {
		mapped := MapUpdateResultDomainToApi(*o.Result)
		res.Result = &mapped
	}
	return res
}

func MapRunResultDomainToApi(r domain.RunResult) api.RunResult {
	res := api.RunResult{
		Period:     r.Period.Display(),
		OutputDir:  r.OutputDir,
		Employees:  r.Employees,
		TotalHours: r.TotalHours,
		DryRun:     r.DryRun,
		Outcomes:   make([]api.ReportOutcome, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		res.Outcomes = append(res.Outcomes, MapReportOutcomeDomainToApi(o))
	}
	return res
}

func MapPeriodHoursDomainToApi(p domain.Period, hours domain.AggregatedHours) api.PeriodHours {
	res := api.PeriodHours{
		Period:     p.Display(),
		Employees:  make([]api.EmployeeHours, 0, len(hours)),
		TotalHours: hours.Total(),
	}
	for _, name := range hours.Employees() {
		codes := map[string]float64{}
		for _, code := range hours.Codes(name) {
			codes[code] = hours.Get(name, code)
		}
		res.Employees = append(res.Employees, api.EmployeeHours{
			Employee: name,
			Codes:    codes,
			Total:    hours.EmployeeTotal(name),
		})
	}
	return res
}
