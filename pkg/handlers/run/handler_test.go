package run

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vertekal/msrsync/pkg/models/api"
	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/services/timesheet"
)

type mockUpdater struct {
	mock.Mock
}

func (m *mockUpdater) Run(ctx context.Context, req msr.RunRequest) (*domain.RunResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunResult), args.Error(1)
}

type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchMonth(ctx context.Context, p domain.Period) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *mockSource) FetchRange(ctx context.Context, start, end time.Time) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func setupHandler(t *testing.T) (*Handler, *mockUpdater, *mockSource) {
	t.Helper()
	registry, err := msr.NewRegistry(
		msr.Definition{ID: "TO1", Sheets: []msr.SheetLayout{{Name: "Extension Period MSR", StatusRow: 5, DateHeaderRow: 4}}, FilePatterns: []string{"TO1"}},
		msr.Definition{ID: "TO4", Sheets: []msr.SheetLayout{
			{Name: "CLIN 0001AD", StatusRow: 6, DateHeaderRow: 4},
			{Name: "CLIN 0002AD", StatusRow: 6, DateHeaderRow: 4},
		}, FilePatterns: []string{"TO4", "PIVOT"}},
	)
	require.NoError(t, err)

	updater := new(mockUpdater)
	source := new(mockSource)
	return NewHandler(updater, registry, source, timesheet.DefaultOptions()), updater, source
}

func TestListReports(t *testing.T) {
	handler, _, _ := setupHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/reports", nil)
	rec := httptest.NewRecorder()
	handler.ListReports(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []api.ReportDefinition
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response, 2)
	assert.Equal(t, "TO1", response[0].Id)
	assert.Equal(t, []string{"Extension Period MSR"}, response[0].Sheets)
	assert.Equal(t, "TO4", response[1].Id)
	assert.Equal(t, []string{"CLIN 0001AD", "CLIN 0002AD"}, response[1].Sheets)
	assert.Equal(t, []string{"TO4", "PIVOT"}, response[1].Patterns)
}

func periodRequest(period string) *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/periods/"+period+"/hours", nil)
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("period", period)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestGetPeriodHours(t *testing.T) {
	january := domain.Period{Year: 2026, Month: time.January}

	t.Run("successful response excludes leave codes", func(t *testing.T) {
		handler, _, source := setupHandler(t)
		source.On("FetchMonth", mock.Anything, january).Return([]domain.TimeEntry{
			{FirstName: "Jane", LastName: "Doe", JobCode: "Athena", SubJobCode: "TO1-Labor", Hours: 100},
			{FirstName: "Jane", LastName: "Doe", JobCode: "PTO", Hours: 8},
		}, nil)

		rec := httptest.NewRecorder()
		handler.GetPeriodHours(rec, periodRequest("Jan-26"))

		assert.Equal(t, http.StatusOK, rec.Code)

		var response api.PeriodHours
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "Jan-26", response.Period)
		require.Len(t, response.Employees, 1)
		assert.Equal(t, "Jane Doe", response.Employees[0].Employee)
		assert.Equal(t, map[string]float64{"TO1-Labor": 100}, response.Employees[0].Codes)
		assert.Equal(t, 100.0, response.TotalHours)
		source.AssertExpectations(t)
	})

	t.Run("invalid period", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		rec := httptest.NewRecorder()
		handler.GetPeriodHours(rec, periodRequest("13-2026"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid period format")
	})

	t.Run("source failure", func(t *testing.T) {
		handler, _, source := setupHandler(t)
		source.On("FetchMonth", mock.Anything, january).Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		handler.GetPeriodHours(rec, periodRequest("Jan-26"))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestCreateRun(t *testing.T) {
	january := domain.Period{Year: 2026, Month: time.January}

	t.Run("successful run", func(t *testing.T) {
		handler, updater, _ := setupHandler(t)
		updater.On("Run", mock.Anything, msr.RunRequest{Period: january, Reports: []string{"TO1"}}).
			Return(&domain.RunResult{
				Period:     january,
				OutputDir:  "/tmp/completed/2026/01-Jan",
				Employees:  2,
				TotalHours: 108,
				Outcomes: []domain.ReportOutcome{{
					ReportID: "TO1",
					Source:   "/tmp/TO1.xlsx",
					Result:   &domain.UpdateResult{ReportID: "TO1", Period: january, TotalHours: 108},
				}},
			}, nil)

		body := strings.NewReader(`{"period": "Jan-26", "reports": ["TO1"]}`)
		rec := httptest.NewRecorder()
		handler.CreateRun(rec, httptest.NewRequest("POST", "/api/v1/runs", body))

		assert.Equal(t, http.StatusOK, rec.Code)

		var response api.RunResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.NotEmpty(t, response.RunId)
		assert.Equal(t, "Jan-26", response.Period)
		assert.Equal(t, 108.0, response.TotalHours)
		require.Len(t, response.Outcomes, 1)
		assert.Equal(t, "TO1", response.Outcomes[0].ReportId)
		assert.Empty(t, response.Outcomes[0].Error)
		updater.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		rec := httptest.NewRecorder()
		handler.CreateRun(rec, httptest.NewRequest("POST", "/api/v1/runs", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown report id", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		body := strings.NewReader(`{"period": "Jan-26", "reports": ["TO9"]}`)
		rec := httptest.NewRecorder()
		handler.CreateRun(rec, httptest.NewRequest("POST", "/api/v1/runs", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "TO9")
	})

	t.Run("missing report file", func(t *testing.T) {
		handler, updater, _ := setupHandler(t)
		updater.On("Run", mock.Anything, mock.Anything).
			Return(nil, domain.ErrReportNotFound)

		body := strings.NewReader(`{"period": "Jan-26"}`)
		rec := httptest.NewRecorder()
		handler.CreateRun(rec, httptest.NewRequest("POST", "/api/v1/runs", body))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
