package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeEntryChargeCode(t *testing.T) {
	tests := []struct {
		name  string
		entry TimeEntry
		want  string
	}{
		{
			name:  "sub job code wins",
			entry: TimeEntry{JobCode: "Athena", SubJobCode: "TO1-Labor"},
			want:  "TO1-Labor",
		},
		{
			name:  "falls back to job code",
			entry: TimeEntry{JobCode: "Overhead"},
			want:  "Overhead",
		},
		{
			name:  "whitespace-only sub code is ignored",
			entry: TimeEntry{JobCode: "Overhead", SubJobCode: "   "},
			want:  "Overhead",
		},
		{
			name:  "both empty",
			entry: TimeEntry{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.ChargeCode())
		})
	}
}

func TestTimeEntryEmployeeName(t *testing.T) {
	entry := TimeEntry{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", entry.EmployeeName())

	lastOnly := TimeEntry{LastName: "Doe"}
	assert.Equal(t, "Doe", lastOnly.EmployeeName())
}

func TestAggregatedHours(t *testing.T) {
	agg := AggregatedHours{}
	agg.Add("Jane Doe", "TO1-Labor", 8)
	agg.Add("Jane Doe", "TO1-Labor", 4.5)
	agg.Add("Jane Doe", "TO4-ODC", 2)
	agg.Add("Adam Smith", "TO1-Labor", 6)

	assert.Equal(t, 12.5, agg.Get("Jane Doe", "TO1-Labor"))
	assert.Equal(t, 0.0, agg.Get("Jane Doe", "unknown"))
	assert.Equal(t, 0.0, agg.Get("nobody", "TO1-Labor"))

	assert.Equal(t, []string{"Adam Smith", "Jane Doe"}, agg.Employees())
	assert.Equal(t, []string{"TO1-Labor", "TO4-ODC"}, agg.Codes("Jane Doe"))

	assert.Equal(t, 14.5, agg.EmployeeTotal("Jane Doe"))
	assert.Equal(t, 20.5, agg.Total())
}

func TestReportOutcome(t *testing.T) {
	run := RunResult{
		Outcomes: []ReportOutcome{
			{ReportID: "TO1", Result: &UpdateResult{TotalHours: 40}},
			{ReportID: "TO4", Err: "open workbook: file corrupt"},
			{ReportID: "TO6", Result: &UpdateResult{TotalHours: 12}},
		},
	}

	assert.Equal(t, 2, run.Succeeded())
	assert.Equal(t, []string{"TO4"}, run.Failed())
}
