package timesheet

import (
	"context"
	"time"

	"github.com/vertekal/msrsync/pkg/models/domain"
)

// Source supplies timesheet entries for a reporting window.
type Source interface {
	FetchMonth(ctx context.Context, p domain.Period) ([]domain.TimeEntry, error)
	FetchRange(ctx context.Context, start, end time.Time) ([]domain.TimeEntry, error)
}

// TimesheetAPI is the slice of the time tracking client the sources need.
type TimesheetAPI interface {
	Timesheets(ctx context.Context, start, end time.Time) ([]domain.TimeEntry, error)
}

// APISource fetches entries from the time tracking service.
type APISource struct {
	client TimesheetAPI
}

func NewAPISource(client TimesheetAPI) *APISource {
	return &APISource{client: client}
}

func (s *APISource) FetchMonth(ctx context.Context, p domain.Period) ([]domain.TimeEntry, error) {
	return s.client.Timesheets(ctx, p.Start(), p.End())
}

func (s *APISource) FetchRange(ctx context.Context, start, end time.Time) ([]domain.TimeEntry, error) {
	return s.client.Timesheets(ctx, start, end)
}

// CSVSource serves every fetch from one export file. The export is expected
// to cover exactly the requested window.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) FetchMonth(_ context.Context, _ domain.Period) ([]domain.TimeEntry, error) {
	return ReadCSVFile(s.path)
}

func (s *CSVSource) FetchRange(_ context.Context, _, _ time.Time) ([]domain.TimeEntry, error) {
	return ReadCSVFile(s.path)
}
