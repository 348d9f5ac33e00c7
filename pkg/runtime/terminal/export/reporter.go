package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/vertekal/msrsync/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        24,
		ValueWidth:       10,
		UnitWidth:        4,
		DescriptionWidth: 60,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			unitStr := unit
			if unit == "" {
				unitStr = strings.Repeat(" ", c.config.UnitWidth)
			}
			return fmt.Sprintf("| %-*s | %*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unitStr,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
		"hours": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}
}

func (c *Reporter) HandleRun(result *domain.RunResult) error {
	tmpl := `
Monthly update {{.Period.Display}}{{if .DryRun}} (preview){{end}}
Employees with hours: {{.Employees}}
Total hours: {{printf "%.2f" .TotalHours}}
{{if .OutputDir}}Output directory: {{.OutputDir}}{{end}}
{{separator}}
{{formatRow "Report" "Hours" "" "Result"}}
{{separator}}
{{range .Outcomes}}{{if .Failed}}{{formatRow .ReportID "-" "" .Err}}
{{else}}{{formatRow .ReportID (hours .Result.TotalHours) "hrs" .Result.OutputPath}}
{{end}}{{end}}{{separator}}

Successfully updated: {{.Succeeded}}/{{len .Outcomes}}
`
	t, err := template.New("run").Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}

func (c *Reporter) HandleWeekly(update *domain.WeeklyUpdate) error {
	tmpl := `
Weekly update {{.Week.Label}} (column {{.Column}}{{if not .Confirmed}}, unconfirmed match{{end}})
{{separator}}
{{formatRow "Employee" "Hours" "" ""}}
{{separator}}
{{range $name, $hrs := .Hours}}{{formatRow $name (hours $hrs) "hrs" ""}}
{{end}}{{separator}}

Total hours: {{printf "%.2f" .TotalHours}}
{{if .OutputPath}}Saved to: {{.OutputPath}}{{end}}
`
	t, err := template.New("weekly").Funcs(c.funcMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, update)
}

func (c *Reporter) HandleRollup(result *domain.RollupResult) error {
	funcMap := c.funcMap()
	funcMap["billed"] = func(r domain.LedgerRow) string {
		return fmt.Sprintf("%.2f @ %.2f/hr", r.Cost, r.Rate)
	}

	tmpl := `
Monthly rollup {{.Period.Display}}
Weeks rolled up: {{.WeeksRolled}} (skipped {{.WeeksSkipped}}, missing {{.WeeksMissing}})
{{separator}}
{{formatRow "Employee" "Hours" "" "Billed"}}
{{separator}}
{{range .Rows}}{{formatRow .Employee (hours .Hours) "hrs" (billed .)}}
{{end}}{{separator}}

Total: {{printf "%.2f" .TotalHours}} hrs, USD {{printf "%.2f" .TotalCost}}
{{if .OutputPath}}Saved to: {{.OutputPath}}{{end}}
`
	t, err := template.New("rollup").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, result)
}
