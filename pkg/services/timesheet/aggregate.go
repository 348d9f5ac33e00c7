package timesheet

import (
	"github.com/samber/lo"

	"github.com/vertekal/msrsync/pkg/models/domain"
)

// Options control which timesheet entries count toward billable hours.
type Options struct {
	// ExcludedJobCodes drops entries whose top level job code matches,
	// e.g. PTO and Holiday.
	ExcludedJobCodes []string
}

func DefaultOptions() Options {
	return Options{ExcludedJobCodes: []string{"PTO", "Holiday"}}
}

// Aggregate folds timesheet entries into hours per employee and charge
// code. Entries with an excluded job code, an empty resolved charge code or
// no positive hours are dropped.
func Aggregate(entries []domain.TimeEntry, opts Options) domain.AggregatedHours {
	agg := domain.AggregatedHours{}
	for _, entry := range entries {
		if lo.Contains(opts.ExcludedJobCodes, entry.JobCode) {
			continue
		}
		code := entry.ChargeCode()
		if code == "" || entry.Hours <= 0 {
			continue
		}
		agg.Add(entry.EmployeeName(), code, entry.Hours)
	}
	return agg
}

// EmployeeTotals sums every entry's hours per employee with no exclusions.
// The weekly report bills all tracked time, leave included.
func EmployeeTotals(entries []domain.TimeEntry) map[string]float64 {
	totals := map[string]float64{}
	for _, entry := range entries {
		totals[entry.EmployeeName()] += entry.Hours
	}
	return totals
}
