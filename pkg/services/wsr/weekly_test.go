package wsr

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/services/msr"
	"github.com/vertekal/msrsync/pkg/store/rates"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) FetchMonth(ctx context.Context, p domain.Period) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func (m *MockSource) FetchRange(ctx context.Context, start, end time.Time) ([]domain.TimeEntry, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeEntry), args.Error(1)
}

func testLayout() Layout {
	return Layout{
		DetailSheet:   "CLIN Level Detail",
		LedgerSheet:   "Data",
		StatusRow:     2,
		DateHeaderRow: 3,
		EmployeeRows:  []int{4, 5, 6, 7},
		NameCol:       2,
		PLCCol:        1,
		CLINCol:       3,
		DetailCol:     4,
		RateCol:       5,
		WBSCol:        6,
		ChargeNoCol:   7,
		Scan:          msr.ColumnScan{From: 8, To: 20},
		Highlight:     "D9E2F3",
	}
}

// week to update: the target column sits at 9, right of the completed
// Jan 5-9 week at column 8.
var targetWeek = domain.Week{
	Start: time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2026, time.January, 16, 0, 0, 0, 0, time.UTC),
}

type wsrFixture struct {
	base    string
	path    string
	source  *MockSource
	service *Service
}

// setupWSR builds a weekly report workbook with one completed week, the
// target week's header, the closing year total, and three employee rows
// plus a leftover "Employee" header cell.
func setupWSR(t *testing.T, withYearTotal bool) *wsrFixture {
	t.Helper()

	wb := xlsx.New()
	defer wb.Close()
	detail := "CLIN Level Detail"
	require.NoError(t, wb.AddSheet(detail))
	require.NoError(t, wb.AddSheet("Data"))

	require.NoError(t, wb.SetString(detail, 8, 3, "Jan 5-9"))
	require.NoError(t, wb.SetString(detail, 9, 3, "Jan 12-16"))
	if withYearTotal {
		require.NoError(t, wb.SetString(detail, 10, 3, "Total 2026"))
	}
	require.NoError(t, wb.SetString(detail, 8, 2, "Actual"))

	names := map[int]string{4: "David Thompson", 5: "Nathan Ruf", 7: "Employee"}
	for row, name := range names {
		require.NoError(t, wb.SetString(detail, 2, row, name))
	}
	require.NoError(t, wb.SetFloat(detail, 8, 4, 40))
	require.NoError(t, wb.SetFloat(detail, 8, 5, 40))

	// Ledger header plus one line from a prior month.
	require.NoError(t, wb.SetString("Data", 1, 1, "Company"))
	require.NoError(t, wb.SetString("Data", 1, 2, "Vertekal"))

	base := t.TempDir()
	path := filepath.Join(base, "Vertekal_WSR_2026-01-05_to_2026-01-09.xlsx")
	require.NoError(t, wb.SaveAs(path))

	source := &MockSource{}
	finder := NewFinder(
		config.Paths{
			BaseDir:      base,
			TemplatesDir: filepath.Join(base, "templates"),
			CompletedDir: filepath.Join(base, "completed"),
		},
		config.WSR{FilePrefix: "Vertekal_WSR", TemplateName: "Vertekal- Draft WSR.xlsx"},
	)
	rateStore := rates.NewStore(map[string]float64{"Nathan Ruf": 187.41}, 100)
	service := NewService(testLayout(), source, rateStore, "Vertekal", finder)

	return &wsrFixture{base: base, path: path, source: source, service: service}
}

func TestWeekly_WritesHoursAndStatus(t *testing.T) {
	fx := setupWSR(t, true)
	fx.source.On("FetchRange", mock.Anything, targetWeek.Start, targetWeek.End).Return([]domain.TimeEntry{
		{FirstName: "David", LastName: "Thompson", JobCode: "Athena", Hours: 30},
		{FirstName: "David", LastName: "Thompson", JobCode: "PTO", Hours: 8.5},
		{FirstName: "Nathan", LastName: "Ruf", JobCode: "Athena", Hours: 40},
	}, nil)

	update, err := fx.service.Weekly(context.Background(), WeeklyRequest{Week: targetWeek, Path: fx.path})
	require.NoError(t, err)

	assert.Equal(t, 9, update.Column)
	assert.True(t, update.Confirmed)
	assert.Equal(t, map[string]float64{"David Thompson": 38.5, "Nathan Ruf": 40}, update.Hours)
	assert.Equal(t, 78.5, update.TotalHours)

	want := filepath.Join(fx.base, "completed", "2026", "Q1", "Vertekal_WSR_2026-01-12_to_2026-01-16.xlsx")
	assert.Equal(t, want, update.OutputPath)

	saved, err := xlsx.Open(update.OutputPath)
	require.NoError(t, err)
	defer saved.Close()

	status, err := saved.CellString("CLIN Level Detail", 9, 2)
	require.NoError(t, err)
	assert.Equal(t, "Actual", status)

	david, ok := saved.CellFloat("CLIN Level Detail", 9, 4)
	require.True(t, ok)
	assert.Equal(t, 38.5, david)
	nathan, ok := saved.CellFloat("CLIN Level Detail", 9, 5)
	require.True(t, ok)
	assert.Equal(t, 40.0, nathan)

	style, err := saved.StyleID("CLIN Level Detail", 9, 4)
	require.NoError(t, err)
	color, ok := saved.FillColor(style)
	require.True(t, ok)
	assert.Equal(t, "D9E2F3", color)

	// The blank row and the header leftover stay untouched.
	blank, err := saved.CellString("CLIN Level Detail", 9, 6)
	require.NoError(t, err)
	assert.Empty(t, blank)
	header, err := saved.CellString("CLIN Level Detail", 9, 7)
	require.NoError(t, err)
	assert.Empty(t, header)

	fx.source.AssertExpectations(t)
}

func TestWeekly_UnconfirmedColumnStillWrites(t *testing.T) {
	fx := setupWSR(t, false)
	fx.source.On("FetchRange", mock.Anything, targetWeek.Start, targetWeek.End).Return([]domain.TimeEntry{
		{FirstName: "Nathan", LastName: "Ruf", JobCode: "Athena", Hours: 24},
	}, nil)

	out := filepath.Join(fx.base, "updated.xlsx")
	update, err := fx.service.Weekly(context.Background(), WeeklyRequest{
		Week:       targetWeek,
		Path:       fx.path,
		OutputPath: out,
	})
	require.NoError(t, err)

	assert.False(t, update.Confirmed)
	assert.Equal(t, out, update.OutputPath)

	saved, err := xlsx.Open(out)
	require.NoError(t, err)
	defer saved.Close()
	nathan, ok := saved.CellFloat("CLIN Level Detail", 9, 5)
	require.True(t, ok)
	assert.Equal(t, 24.0, nathan)
}

func TestWeekly_DryRun(t *testing.T) {
	fx := setupWSR(t, true)
	fx.source.On("FetchRange", mock.Anything, targetWeek.Start, targetWeek.End).Return([]domain.TimeEntry{
		{FirstName: "David", LastName: "Thompson", JobCode: "Athena", Hours: 16},
	}, nil)

	update, err := fx.service.Weekly(context.Background(), WeeklyRequest{Week: targetWeek, Path: fx.path, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 9, update.Column)
	assert.Equal(t, 16.0, update.TotalHours)
	assert.Empty(t, update.OutputPath)
	assert.NoDirExists(t, filepath.Join(fx.base, "completed"))
}

func TestWeekly_WeekColumnMissing(t *testing.T) {
	fx := setupWSR(t, true)
	missing := domain.Week{
		Start: time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.February, 6, 0, 0, 0, 0, time.UTC),
	}
	fx.source.On("FetchRange", mock.Anything, missing.Start, missing.End).Return([]domain.TimeEntry{}, nil)

	_, err := fx.service.Weekly(context.Background(), WeeklyRequest{Week: missing, Path: fx.path})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrColumnNotFound)
}

func TestWeekly_DetailSheetMissing(t *testing.T) {
	fx := setupWSR(t, true)

	wb := xlsx.New()
	bare := filepath.Join(fx.base, "bare.xlsx")
	require.NoError(t, wb.SaveAs(bare))
	require.NoError(t, wb.Close())

	fx.source.On("FetchRange", mock.Anything, targetWeek.Start, targetWeek.End).Return([]domain.TimeEntry{}, nil)

	_, err := fx.service.Weekly(context.Background(), WeeklyRequest{Week: targetWeek, Path: bare})
	require.Error(t, err)
	var refErr *domain.ConfigRefError
	assert.ErrorAs(t, err, &refErr)
}

func TestWeekly_FetchFailure(t *testing.T) {
	fx := setupWSR(t, true)
	fx.source.On("FetchRange", mock.Anything, targetWeek.Start, targetWeek.End).
		Return(nil, errors.New("api down"))

	_, err := fx.service.Weekly(context.Background(), WeeklyRequest{Week: targetWeek, Path: fx.path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch timesheets for week Jan 12-16")
}
