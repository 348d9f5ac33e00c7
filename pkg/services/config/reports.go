package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Sheet describes the fixed rows of one sheet in a monthly report workbook.
// Zero values mean the sheet does not use that feature.
type Sheet struct {
	// Name is the worksheet name.
	Name string `mapstructure:"name"`
	// StatusRow is the row that carries the Actual/Estimate marker.
	StatusRow int `mapstructure:"status_row"`
	// DateHeaderRow is the row scanned for the period column.
	DateHeaderRow int `mapstructure:"date_header_row"`
	// TotalRow receives the sheet's hour total, 0 for none.
	TotalRow int `mapstructure:"total_row"`
	// FillFromRow and FillToRow bound the rows painted with the status
	// style, 0 for none.
	FillFromRow int `mapstructure:"fill_from_row"`
	FillToRow   int `mapstructure:"fill_to_row"`
}

// Report configures one monthly report type.
type Report struct {
	ID     string  `mapstructure:"id"`
	Sheets []Sheet `mapstructure:"sheets"`
	// FallbackFill is the RGB fill used when the previous column has no
	// fill of its own, e.g. "B4C6E7". Empty disables the fallback.
	FallbackFill string `mapstructure:"fallback_fill"`
	// Highlight is a constant RGB fill applied to every hour cell instead
	// of copying the previous column's style. Empty disables it.
	Highlight string `mapstructure:"highlight"`
	// FilePatterns are the case-insensitive substrings accepted when
	// discovering the report file. Defaults to the report id.
	FilePatterns []string `mapstructure:"file_patterns"`
	// ScanFrom and ScanTo bound the header scan. ScanTo 0 scans to the
	// sheet's last column.
	ScanFrom int `mapstructure:"scan_from"`
	ScanTo   int `mapstructure:"scan_to"`
}

// WSR configures the weekly status report workbook.
type WSR struct {
	DetailSheet   string `mapstructure:"detail_sheet"`
	LedgerSheet   string `mapstructure:"ledger_sheet"`
	StatusRow     int    `mapstructure:"status_row"`
	DateHeaderRow int    `mapstructure:"date_header_row"`
	EmployeeRows  []int  `mapstructure:"employee_rows"`
	// Column positions on the detail sheet for the per-employee contract
	// metadata copied into ledger rows.
	NameCol     int `mapstructure:"name_col"`
	PLCCol      int `mapstructure:"plc_col"`
	CLINCol     int `mapstructure:"clin_col"`
	DetailCol   int `mapstructure:"detail_col"`
	RateCol     int `mapstructure:"rate_col"`
	WBSCol      int `mapstructure:"wbs_col"`
	ChargeNoCol int `mapstructure:"charge_no_col"`
	// ScanFrom and ScanTo bound the week column scan. The weekly workbook
	// accumulates years of columns, so the scan starts deep in the sheet.
	ScanFrom  int    `mapstructure:"scan_from"`
	ScanTo    int    `mapstructure:"scan_to"`
	Highlight string `mapstructure:"highlight"`
	// FilePrefix names generated weekly workbooks; TemplateName is the
	// blank workbook used when no prior one exists.
	FilePrefix   string `mapstructure:"file_prefix"`
	TemplateName string `mapstructure:"template_name"`
}

// Settings is the full report settings file.
type Settings struct {
	Reports []Report `mapstructure:"reports"`
	WSR     WSR      `mapstructure:"wsr"`
}

// DefaultSettings returns the built-in report layouts. A settings file
// replaces the report list wholesale when it defines one.
func DefaultSettings() Settings {
	return Settings{
		Reports: []Report{
			{
				ID: "TO1",
				Sheets: []Sheet{
					{Name: "Extension Period MSR", StatusRow: 5, DateHeaderRow: 4, TotalRow: 14},
				},
				FilePatterns: []string{"TO1", "Athena TO1"},
			},
			{
				ID: "TO4",
				Sheets: []Sheet{
					{Name: "CLIN 0001AD", StatusRow: 6, DateHeaderRow: 4, FillFromRow: 6, FillToRow: 14},
					{Name: "CLIN 0002AD", StatusRow: 6, DateHeaderRow: 4, FillFromRow: 6, FillToRow: 14},
				},
				FilePatterns: []string{"TO4", "Athena TO4", "PIVOT"},
			},
			{
				ID: "TO6",
				Sheets: []Sheet{
					{Name: "Option 4 MSR", StatusRow: 5, DateHeaderRow: 4},
				},
				FilePatterns: []string{"TO6", "Athena TO6"},
			},
			{
				ID: "TO8",
				Sheets: []Sheet{
					{Name: "CLIN 0001AA", StatusRow: 6, DateHeaderRow: 4, FillFromRow: 6, FillToRow: 14},
					{Name: "CLIN 0002AA", StatusRow: 6, DateHeaderRow: 4, FillFromRow: 6, FillToRow: 14},
				},
				FallbackFill: "B4C6E7",
				FilePatterns: []string{"TO8", "Athena TO8"},
			},
			{
				ID: "EMMETT",
				Sheets: []Sheet{
					{Name: "Magni HA", StatusRow: 5, DateHeaderRow: 4},
				},
				Highlight:    "D9E2F3",
				FilePatterns: []string{"EMMETT", "MAGNI"},
			},
		},
		WSR: WSR{
			DetailSheet:   "CLIN Level Detail",
			LedgerSheet:   "Data",
			StatusRow:     2,
			DateHeaderRow: 3,
			EmployeeRows:  []int{4, 5, 6},
			NameCol:       2,
			PLCCol:        1,
			CLINCol:       3,
			DetailCol:     4,
			RateCol:       5,
			WBSCol:        6,
			ChargeNoCol:   14,
			ScanFrom:      100,
			ScanTo:        200,
			Highlight:     "D9E2F3",
			FilePrefix:    "Vertekal_WSR",
			TemplateName:  "Vertekal- Draft WSR.xlsx",
		},
	}
}

// LoadSettings reads the report settings file over the defaults. An empty
// path returns the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	cfg := DefaultSettings()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return cfg, nil
}
