package domain

import (
	"fmt"
	"time"
)

// Week is one Monday through Friday work week. Start and End are midnight
// UTC dates; a week taken from WeeksInMonth may be clamped to the month
// boundary on either side.
type Week struct {
	Start time.Time
	End   time.Time
}

// WeekContaining returns the work week that holds the given date.
func WeekContaining(t time.Time) Week {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	monday := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
	return Week{Start: monday, End: monday.AddDate(0, 0, 4)}
}

// LastCompletedWeek returns the most recent finished work week. A week only
// counts as finished after 18:00 on its Friday.
func LastCompletedWeek(now time.Time) Week {
	daysSinceFriday := (int(now.Weekday()) - int(time.Friday) + 7) % 7
	if daysSinceFriday == 0 && now.Hour() < 18 {
		daysSinceFriday = 7
	}
	return WeekContaining(now.AddDate(0, 0, -daysSinceFriday))
}

// Label renders the header text the detail sheet uses for the week,
// e.g. "Jan 5-9", or "Jan 28-Feb 1" when the week crosses months.
func (w Week) Label() string {
	if w.Start.Month() == w.End.Month() {
		return fmt.Sprintf("%s %d-%d", w.Start.Format("Jan"), w.Start.Day(), w.End.Day())
	}
	return fmt.Sprintf("%s %d-%s %d", w.Start.Format("Jan"), w.Start.Day(), w.End.Format("Jan"), w.End.Day())
}

// Year returns the calendar year of the week's start.
func (w Week) Year() int {
	return w.Start.Year()
}

// Quarter returns the calendar quarter of the week's start.
func (w Week) Quarter() int {
	return (int(w.Start.Month())-1)/3 + 1
}

// WeeksInMonth lists the work weeks belonging to the period. Weeks that
// straddle a month boundary are clamped to it so their labels match the
// detail sheet's partial-week headers.
func WeeksInMonth(p Period) []Week {
	first := p.Start()
	last := p.End()

	monday := first
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	var weeks []Week
	for !monday.After(last) {
		start, end := monday, monday.AddDate(0, 0, 4)
		if start.Month() == p.Month || end.Month() == p.Month {
			if start.Month() != p.Month {
				start = first
			}
			if end.Month() != p.Month {
				end = last
			}
			weeks = append(weeks, Week{Start: start, End: end})
		}
		monday = monday.AddDate(0, 0, 7)
	}
	return weeks
}
