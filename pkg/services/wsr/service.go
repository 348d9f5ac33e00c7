package wsr

import (
	"fmt"

	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
	"github.com/vertekal/msrsync/pkg/store/rates"
)

// Layout mirrors the fixed geometry of the weekly report workbook: the
// detail sheet with one column per week, and the ledger sheet that collects
// billed month lines.
type Layout struct {
	DetailSheet   string
	LedgerSheet   string
	StatusRow     int
	DateHeaderRow int
	// EmployeeRows are the detail sheet rows carrying one employee each.
	// Names are read from NameCol, so adding an employee to the workbook
	// needs a config change only when their row is new.
	EmployeeRows []int
	NameCol      int
	PLCCol       int
	CLINCol      int
	DetailCol    int
	RateCol      int
	WBSCol       int
	ChargeNoCol  int
	Scan         msr.ColumnScan
	Highlight    string
}

// LayoutFromSettings validates weekly report settings into a Layout.
func LayoutFromSettings(cfg config.WSR) (Layout, error) {
	if cfg.DetailSheet == "" {
		return Layout{}, fmt.Errorf("wsr: detail sheet cannot be empty")
	}
	if cfg.LedgerSheet == "" {
		return Layout{}, fmt.Errorf("wsr: ledger sheet cannot be empty")
	}
	if cfg.StatusRow < 1 || cfg.DateHeaderRow < 1 {
		return Layout{}, fmt.Errorf("wsr: status and date header rows must be positive")
	}
	if len(cfg.EmployeeRows) == 0 {
		return Layout{}, fmt.Errorf("wsr: at least one employee row is required")
	}
	if cfg.NameCol < 1 {
		return Layout{}, fmt.Errorf("wsr: name column must be positive")
	}

	return Layout{
		DetailSheet:   cfg.DetailSheet,
		LedgerSheet:   cfg.LedgerSheet,
		StatusRow:     cfg.StatusRow,
		DateHeaderRow: cfg.DateHeaderRow,
		EmployeeRows:  cfg.EmployeeRows,
		NameCol:       cfg.NameCol,
		PLCCol:        cfg.PLCCol,
		CLINCol:       cfg.CLINCol,
		DetailCol:     cfg.DetailCol,
		RateCol:       cfg.RateCol,
		WBSCol:        cfg.WBSCol,
		ChargeNoCol:   cfg.ChargeNoCol,
		Scan:          msr.ColumnScan{From: cfg.ScanFrom, To: cfg.ScanTo},
		Highlight:     cfg.Highlight,
	}, nil
}

// Service performs weekly detail updates and monthly rollups on the weekly
// report workbook.
type Service struct {
	layout  Layout
	source  timesheet.Source
	rates   rates.Store
	company string
	finder  *Finder
}

func NewService(layout Layout, source timesheet.Source, rateStore rates.Store, company string, finder *Finder) *Service {
	return &Service{
		layout:  layout,
		source:  source,
		rates:   rateStore,
		company: company,
		finder:  finder,
	}
}
