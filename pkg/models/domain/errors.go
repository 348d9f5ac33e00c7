package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPeriodFormat reports an unrecognized reporting period string.
	ErrPeriodFormat = errors.New("unrecognized period format")

	// ErrReportNotFound reports that no report file could be located.
	ErrReportNotFound = errors.New("report file not found")

	// ErrColumnNotFound reports that a header scan found no matching column.
	ErrColumnNotFound = errors.New("period column not found")
)

// ConfigRefError reports a mapping or settings entry pointing at a sheet or
// cell the workbook does not have.
type ConfigRefError struct {
	Report string
	Ref    string
}

func (e *ConfigRefError) Error() string {
	return fmt.Sprintf("report %s: config references %s which the workbook does not have", e.Report, e.Ref)
}

// APIStatusError reports a non-2xx response from the time tracking service.
type APIStatusError struct {
	Status int
	Body   string
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("time tracking api returned status %d: %s", e.Status, e.Body)
}
