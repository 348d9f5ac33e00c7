package timesheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vertekal/msrsync/pkg/models/domain"
)

// ReadCSV parses a time tracking export. The header row names the columns;
// fname, lname, hours, jobcode_1 and jobcode_2 are used, anything else is
// ignored.
func ReadCSV(r io.Reader) ([]domain.TimeEntry, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var entries []domain.TimeEntry
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		var hours float64
		if raw := field("hours"); raw != "" {
			hours, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("csv line %d: bad hours value %q: %w", line, raw, err)
			}
		}

		entries = append(entries, domain.TimeEntry{
			FirstName:  field("fname"),
			LastName:   field("lname"),
			Hours:      hours,
			JobCode:    field("jobcode_1"),
			SubJobCode: field("jobcode_2"),
		})
	}
	return entries, nil
}

// ReadCSVFile reads a time tracking export from disk.
func ReadCSVFile(path string) ([]domain.TimeEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}
