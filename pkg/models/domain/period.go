package domain

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies one reporting month.
type Period struct {
	Year  int
	Month time.Month
}

var periodLayouts = []string{"Jan-06", "January 2006", "2006-01"}

// ParsePeriod accepts the three period spellings used across the report
// workflows: "Jan-26", "January 2026" and "2026-01".
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Period{Year: t.Year(), Month: t.Month()}, nil
		}
	}
	return Period{}, fmt.Errorf("%w: %q", ErrPeriodFormat, s)
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Start returns midnight UTC on the first day of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the last day of the month.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Prev returns the preceding month.
func (p Period) Prev() Period {
	return PeriodOf(p.Start().AddDate(0, -1, 0))
}

// Display renders the short billing label used in output file names,
// e.g. "Jan-26".
func (p Period) Display() string {
	return p.Start().Format("Jan-06")
}

// FolderName renders the completed-folder segment, e.g. "01-Jan".
func (p Period) FolderName() string {
	return p.Start().Format("01-Jan")
}

// MonthName returns the full month name, e.g. "January".
func (p Period) MonthName() string {
	return p.Start().Format("January")
}

// Quarter returns the calendar quarter, 1 through 4.
func (p Period) Quarter() int {
	return (int(p.Month)-1)/3 + 1
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p Period) String() string {
	return p.Start().Format("2006-01")
}
