package domain

import (
	"sort"
	"strings"
)

// TimeEntry is a single normalized timesheet line, either from the time
// tracking service or from a CSV export.
type TimeEntry struct {
	FirstName  string
	LastName   string
	Hours      float64
	JobCode    string // top level job code
	SubJobCode string // service item under JobCode, may be empty
}

// EmployeeName returns the display name used on the report sheets.
func (e TimeEntry) EmployeeName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ChargeCode resolves the billing code for the entry. The sub job code wins
// over the top level code when both are present.
func (e TimeEntry) ChargeCode() string {
	if code := strings.TrimSpace(e.SubJobCode); code != "" {
		return code
	}
	return strings.TrimSpace(e.JobCode)
}

// AggregatedHours maps employee name to charge code to total hours.
type AggregatedHours map[string]map[string]float64

// Add accumulates hours for an employee and charge code.
func (a AggregatedHours) Add(employee, code string, hours float64) {
	codes, ok := a[employee]
	if !ok {
		codes = map[string]float64{}
		a[employee] = codes
	}
	codes[code] += hours
}

// Get returns the hours booked by an employee on a charge code, zero when
// the employee or code is absent.
func (a AggregatedHours) Get(employee, code string) float64 {
	return a[employee][code]
}

// Employees lists employee names in sorted order.
func (a AggregatedHours) Employees() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Codes lists an employee's charge codes in sorted order.
func (a AggregatedHours) Codes(employee string) []string {
	codes := make([]string, 0, len(a[employee]))
	for code := range a[employee] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// EmployeeTotal sums an employee's hours across all charge codes.
func (a AggregatedHours) EmployeeTotal(employee string) float64 {
	var total float64
	for _, hours := range a[employee] {
		total += hours
	}
	return total
}

// Total sums all hours in the aggregate.
func (a AggregatedHours) Total() float64 {
	var total float64
	for employee := range a {
		total += a.EmployeeTotal(employee)
	}
	return total
}
