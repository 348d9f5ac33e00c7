package api

type ReportDefinition struct {
	Id       string   `json:"id"`
	Sheets   []string `json:"sheets"`
	Patterns []string `json:"patterns"`
}

type EmployeeHours struct {
	Employee string             `json:"employee"`
	Codes    map[string]float64 `json:"codes"`
	Total    float64            `json:"total"`
}

type PeriodHours struct {
	Period     string          `json:"period"`
	Employees  []EmployeeHours `json:"employees"`
	TotalHours float64         `json:"total_hours"`
}

type CellUpdate struct {
	Sheet      string  `json:"sheet"`
	Row        int     `json:"row"`
	Column     int     `json:"column"`
	Employee   string  `json:"employee"`
	ChargeCode string  `json:"charge_code"`
	Hours      float64 `json:"hours"`
}

type SheetUpdate struct {
	Sheet  string  `json:"sheet"`
	Column int     `json:"column"`
	Hours  float64 `json:"hours"`
}

type UpdateResult struct {
	ReportId   string        `json:"report_id"`
	Period     string        `json:"period"`
	Sheets     []SheetUpdate `json:"sheets"`
	Updates    []CellUpdate  `json:"updates"`
	TotalHours float64       `json:"total_hours"`
	OutputPath string        `json:"output_path"`
}

type ReportOutcome struct {
	ReportId string        `json:"report_id"`
	Source   string        `json:"source"`
	Result   *UpdateResult `json:"result,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type RunRequest struct {
	Period  string            `json:"period"`
	Reports []string          `json:"reports,omitempty"`
	Files   map[string]string `json:"files,omitempty"`
	DryRun  bool              `json:"dry_run,omitempty"`
}

type RunResult struct {
	RunId      string          `json:"run_id"`
	Period     string          `json:"period"`
	OutputDir  string          `json:"output_dir"`
	Employees  int             `json:"employees"`
	TotalHours float64         `json:"total_hours"`
	DryRun     bool            `json:"dry_run"`
	Outcomes   []ReportOutcome `json:"outcomes"`
}
