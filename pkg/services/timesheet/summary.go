package timesheet

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/samber/lo"

	"github.com/vertekal/msrsync/pkg/models/domain"
)

// CodeHours is one charge code line in an employee summary.
type CodeHours struct {
	Code  string
	Hours float64
}

// EmployeeSummary is the per-employee rollup printed by the summary command.
type EmployeeSummary struct {
	Employee string
	Codes    []CodeHours
	Total    float64
}

// Summaries orders aggregated hours into printable employee summaries,
// sorted by employee name and charge code.
func Summaries(hours domain.AggregatedHours) []EmployeeSummary {
	return lo.Map(hours.Employees(), func(name string, _ int) EmployeeSummary {
		return EmployeeSummary{
			Employee: name,
			Codes: lo.Map(hours.Codes(name), func(code string, _ int) CodeHours {
				return CodeHours{Code: code, Hours: hours.Get(name, code)}
			}),
			Total: hours.EmployeeTotal(name),
		}
	})
}

// WriteSummary prints the banner summary of aggregated hours.
func WriteSummary(w io.Writer, hours domain.AggregatedHours) error {
	funcMap := template.FuncMap{
		"banner": func() string {
			return strings.Repeat("=", 80)
		},
		"rule": func() string {
			return strings.Repeat("-", 80)
		},
		"codeRow": func(code string, h float64) string {
			return fmt.Sprintf("  %-60s %8.2f hrs", code, h)
		},
	}

	tmpl := `{{banner}}
TIMESHEET SUMMARY
{{banner}}
{{range .}}
{{.Employee}} ({{printf "%.2f" .Total}} hrs total)
{{rule}}
{{range .Codes}}{{codeRow .Code .Hours}}
{{end}}{{end}}
{{banner}}
`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(w, Summaries(hours))
}
