package wsr

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertekal/msrsync/pkg/models/domain"
	"github.com/vertekal/msrsync/pkg/services/config"
	"github.com/vertekal/msrsync/pkg/store/rates"
	"github.com/vertekal/msrsync/pkg/store/xlsx"
)

var january = domain.Period{Year: 2026, Month: time.January}

// setupRollup builds a workbook covering four of January 2026's five weeks.
// The Jan 1-2 column is missing, Jan 12-16 is still an estimate, and the
// other three are marked Actual. Nathan's rate cell is blank so his rate
// falls back to the rate store.
func setupRollup(t *testing.T) (*Service, string) {
	t.Helper()

	wb := xlsx.New()
	defer wb.Close()
	detail := "CLIN Level Detail"
	require.NoError(t, wb.AddSheet(detail))
	require.NoError(t, wb.AddSheet("Data"))

	headers := map[int]string{8: "Jan 5-9", 9: "Jan 12-16", 10: "Jan 19-23", 11: "Jan 26-30", 12: "Total 2026"}
	for col, label := range headers {
		require.NoError(t, wb.SetString(detail, col, 3, label))
	}
	statuses := map[int]string{8: "Actual", 9: "Estimate", 10: "Actual", 11: "Actual"}
	for col, status := range statuses {
		require.NoError(t, wb.SetString(detail, col, 2, status))
	}

	require.NoError(t, wb.SetString(detail, 2, 4, "David Thompson"))
	require.NoError(t, wb.SetString(detail, 1, 4, "SME III"))
	require.NoError(t, wb.SetString(detail, 3, 4, "0001"))
	require.NoError(t, wb.SetString(detail, 4, 4, "SW Engineering"))
	require.NoError(t, wb.SetFloat(detail, 5, 4, 211.15))
	require.NoError(t, wb.SetString(detail, 6, 4, "1.2.1"))
	require.NoError(t, wb.SetString(detail, 7, 4, "ATH-TO1"))

	require.NoError(t, wb.SetString(detail, 2, 5, "Nathan Ruf"))
	require.NoError(t, wb.SetString(detail, 1, 5, "SME II"))
	require.NoError(t, wb.SetString(detail, 3, 5, "0002"))
	require.NoError(t, wb.SetString(detail, 4, 5, "Data Engineering"))
	require.NoError(t, wb.SetString(detail, 6, 5, "1.2.2"))
	require.NoError(t, wb.SetString(detail, 7, 5, "ATH-TO1"))

	// Booked no time this month; must not produce a ledger row.
	require.NoError(t, wb.SetString(detail, 2, 6, "Philip Yang"))

	for col, hours := range map[int]float64{8: 40, 10: 32, 11: 40} {
		require.NoError(t, wb.SetFloat(detail, col, 4, hours))
	}
	for col, hours := range map[int]float64{8: 40, 11: 40} {
		require.NoError(t, wb.SetFloat(detail, col, 5, hours))
	}
	// Estimate column hours must stay out of the totals.
	require.NoError(t, wb.SetFloat(detail, 9, 4, 40))
	require.NoError(t, wb.SetFloat(detail, 9, 5, 40))

	require.NoError(t, wb.SetString("Data", 1, 1, "Company"))
	require.NoError(t, wb.SetString("Data", 1, 2, "Vertekal"))

	base := t.TempDir()
	path := filepath.Join(base, "Vertekal_WSR_2026-01-26_to_2026-01-30.xlsx")
	require.NoError(t, wb.SaveAs(path))

	finder := NewFinder(
		config.Paths{BaseDir: base, TemplatesDir: filepath.Join(base, "templates"), CompletedDir: filepath.Join(base, "completed")},
		config.WSR{FilePrefix: "Vertekal_WSR", TemplateName: "Vertekal- Draft WSR.xlsx"},
	)
	rateStore := rates.NewStore(map[string]float64{"Nathan Ruf": 187.41}, 100)
	service := NewService(testLayout(), &MockSource{}, rateStore, "Vertekal", finder)
	return service, path
}

func TestRollup_AppendsActualWeeks(t *testing.T) {
	service, path := setupRollup(t)

	result, err := service.Rollup(context.Background(), RollupRequest{Period: january, Path: path})
	require.NoError(t, err)

	assert.Equal(t, 3, result.WeeksRolled)
	assert.Equal(t, 1, result.WeeksSkipped)
	assert.Equal(t, 1, result.WeeksMissing)
	assert.InDelta(t, 192, result.TotalHours, 0.001)
	assert.InDelta(t, 112*211.15+80*187.41, result.TotalCost, 0.001)
	assert.Equal(t, path, result.OutputPath)

	require.Len(t, result.Rows, 2)
	david := result.Rows[0]
	assert.Equal(t, 3, david.Row)
	assert.Equal(t, "David Thompson", david.Employee)
	assert.InDelta(t, 112, david.Hours, 0.001)
	assert.Equal(t, 211.15, david.Rate)
	assert.InDelta(t, 112*211.15, david.Cost, 0.001)
	assert.Equal(t, "January 2026", david.Month)

	nathan := result.Rows[1]
	assert.Equal(t, 4, nathan.Row)
	assert.Equal(t, 187.41, nathan.Rate)
	assert.InDelta(t, 80, nathan.Hours, 0.001)

	saved, err := xlsx.Open(path)
	require.NoError(t, err)
	defer saved.Close()

	for col, want := range map[int]string{
		1: "Vertekal", 2: "ATH-TO1", 3: "David Thompson", 4: "0001",
		5: "SME III", 7: "1.2.1", 8: "SW Engineering", 11: "January 2026",
	} {
		got, err := saved.CellString("Data", col, 3)
		require.NoError(t, err)
		assert.Equal(t, want, got, "ledger column %d", col)
	}
	rate, ok := saved.CellFloat("Data", 6, 3)
	require.True(t, ok)
	assert.Equal(t, 211.15, rate)
	hours, ok := saved.CellFloat("Data", 9, 3)
	require.True(t, ok)
	assert.InDelta(t, 112, hours, 0.001)
	cost, ok := saved.CellFloat("Data", 10, 3)
	require.True(t, ok)
	assert.InDelta(t, 112*211.15, cost, 0.001)

	fallbackRate, ok := saved.CellFloat("Data", 6, 4)
	require.True(t, ok)
	assert.Equal(t, 187.41, fallbackRate)

	// Philip billed nothing, so the ledger stops after Nathan.
	empty, err := saved.CellString("Data", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRollup_DryRun(t *testing.T) {
	service, path := setupRollup(t)

	result, err := service.Rollup(context.Background(), RollupRequest{Period: january, Path: path, DryRun: true})
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Empty(t, result.OutputPath)

	saved, err := xlsx.Open(path)
	require.NoError(t, err)
	defer saved.Close()
	got, err := saved.CellString("Data", 1, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRollup_ExplicitOutputPath(t *testing.T) {
	service, path := setupRollup(t)
	out := filepath.Join(filepath.Dir(path), "rolled.xlsx")

	result, err := service.Rollup(context.Background(), RollupRequest{Period: january, Path: path, OutputPath: out})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputPath)

	saved, err := xlsx.Open(out)
	require.NoError(t, err)
	defer saved.Close()
	got, err := saved.CellString("Data", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, "David Thompson", got)
}

func TestRollup_LedgerSheetMissing(t *testing.T) {
	service, path := setupRollup(t)

	wb := xlsx.New()
	require.NoError(t, wb.AddSheet("CLIN Level Detail"))
	bare := filepath.Join(filepath.Dir(path), "no-ledger.xlsx")
	require.NoError(t, wb.SaveAs(bare))
	require.NoError(t, wb.Close())

	_, err := service.Rollup(context.Background(), RollupRequest{Period: january, Path: bare})
	require.Error(t, err)
	var refErr *domain.ConfigRefError
	require.ErrorAs(t, err, &refErr)
	assert.Contains(t, refErr.Ref, "Data")
}
