package domain

// CellUpdate records one hours cell written into a report sheet.
type CellUpdate struct {
	Sheet      string
	Row        int
	Column     int
	Employee   string
	ChargeCode string
	Hours      float64
}

// SheetUpdate records the resolved period column and subtotal for one sheet.
type SheetUpdate struct {
	Sheet  string
	Column int
	Hours  float64
}

// UpdateResult summarizes a single report workbook update.
type UpdateResult struct {
	ReportID   string
	Period     Period
	Sheets     []SheetUpdate
	Updates    []CellUpdate
	TotalHours float64
	OutputPath string
}

// ReportOutcome is the per-report slot in a run. Err carries the failure
// message when the report could not be updated; sibling reports in the same
// run are unaffected.
type ReportOutcome struct {
	ReportID string
	Source   string
	Result   *UpdateResult
	Err      string
}

func (o ReportOutcome) Failed() bool {
	return o.Err != ""
}

// RunResult is the outcome of one orchestrated monthly update run.
type RunResult struct {
	Period     Period
	OutputDir  string
	Employees  int
	TotalHours float64
	DryRun     bool
	Outcomes   []ReportOutcome
}

// Succeeded counts reports that updated cleanly.
func (r *RunResult) Succeeded() int {
	var n int
	for _, o := range r.Outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}

// Failed lists the ids of reports that failed.
func (r *RunResult) Failed() []string {
	var ids []string
	for _, o := range r.Outcomes {
		if o.Failed() {
			ids = append(ids, o.ReportID)
		}
	}
	return ids
}

// WeeklyUpdate summarizes one weekly report detail update.
type WeeklyUpdate struct {
	Week       Week
	Column     int
	Confirmed  bool
	Hours      map[string]float64
	TotalHours float64
	OutputPath string
}

// LedgerRow is one line appended to the weekly report's ledger sheet during
// a monthly rollup.
type LedgerRow struct {
	Row      int
	Company  string
	ChargeNo string
	Employee string
	CLIN     string
	PLC      string
	Rate     float64
	WBS      string
	Detail   string
	Hours    float64
	Cost     float64
	Month    string
}

// RollupResult summarizes a monthly rollup of the weekly report.
type RollupResult struct {
	Period       Period
	Rows         []LedgerRow
	WeeksRolled  int
	WeeksSkipped int
	WeeksMissing int
	TotalHours   float64
	TotalCost    float64
	OutputPath   string
}
