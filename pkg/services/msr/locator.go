package msr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

// ColumnScan bounds a header row scan. Zero From starts at column 1; zero
// To scans to the sheet's last used column.
type ColumnScan struct {
	From int
	To   int
}

func (s ColumnScan) bounds(wb *xlsx.Workbook, sheet string) (int, int) {
	from := s.From
	if from < 1 {
		from = 1
	}
	to := s.To
	if to == 0 {
		to = wb.MaxColumn(sheet)
	}
	return from, to
}

// Confidence says how a week column match was verified.
type Confidence int

const (
	// Confirmed means a "Total <year>" header was found near the match.
	Confirmed Confidence = iota
	// Unconfirmed means the label matched but no year total was found
	// nearby. A late December week can resolve into the wrong year's
	// block, so callers should surface the match for review.
	Unconfirmed
)

// totalLookahead is how many columns past a week label the year total may
// sit. Each year block on the detail sheet ends in a "Total <year>" column.
const totalLookahead = 10

// FindMonthColumn returns the first column of headerRow whose date cell
// falls in the given period.
func FindMonthColumn(wb *xlsx.Workbook, sheet string, headerRow int, scan ColumnScan, p domain.Period) (int, error) {
	from, to := scan.bounds(wb, sheet)
	for col := from; col <= to; col++ {
		t, ok := wb.CellDate(sheet, col, headerRow)
		if !ok {
			continue
		}
		if t.Year() == p.Year && t.Month() == p.Month {
			return col, nil
		}
	}
	return 0, fmt.Errorf("%w: sheet %q has no header for %s", domain.ErrColumnNotFound, sheet, p.Display())
}

// FindWeekColumn returns the column whose header contains the week's label.
// The match is confirmed against the year total column that closes each
// year block; an unconfirmed match is still returned.
func FindWeekColumn(wb *xlsx.Workbook, sheet string, headerRow int, scan ColumnScan, week domain.Week) (int, Confidence, error) {
	label := week.Label()
	year := strconv.Itoa(week.Year())

	from, to := scan.bounds(wb, sheet)
	for col := from; col <= to; col++ {
		v, err := wb.CellString(sheet, col, headerRow)
		if err != nil {
			return 0, Unconfirmed, err
		}
		if v == "" || !strings.Contains(v, label) {
			continue
		}

		for check := col; check < col+totalLookahead; check++ {
			tv, err := wb.CellString(sheet, check, headerRow)
			if err != nil {
				break
			}
			if strings.Contains(tv, "Total") && strings.Contains(tv, year) {
				return col, Confirmed, nil
			}
		}
		return col, Unconfirmed, nil
	}
	return 0, Unconfirmed, fmt.Errorf("%w: sheet %q has no column for week %s (%s)", domain.ErrColumnNotFound, sheet, label, year)
}

// FindMonthTotalColumn locates the "<Month> <Year> Total" column on the
// detail sheet.
func FindMonthTotalColumn(wb *xlsx.Workbook, sheet string, headerRow int, scan ColumnScan, p domain.Period) (int, error) {
	want := fmt.Sprintf("%s %d Total", p.MonthName(), p.Year)

	from, to := scan.bounds(wb, sheet)
	for col := from; col <= to; col++ {
		v, err := wb.CellString(sheet, col, headerRow)
		if err != nil {
			return 0, err
		}
		if strings.Contains(v, want) {
			return col, nil
		}
	}
	return 0, fmt.Errorf("%w: sheet %q has no %q column", domain.ErrColumnNotFound, sheet, want)
}
