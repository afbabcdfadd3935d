package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/export"
	"github.com/warp/shift-engine/reconcile"
	"github.com/warp/shift-engine/rota"
)

func testSchedule(t *testing.T) *rota.MonthSchedule {
	t.Helper()
	engine, err := config.Default().Engine()
	require.NoError(t, err)
	sched, err := engine.Schedule(2026, 3, "team-1")
	require.NoError(t, err)
	return sched
}

func testRows() []reconcile.Row {
	return []reconcile.Row{
		{
			Code: "kov", Name: "Kovács Péter", TeamKey: "team-1",
			BroughtForward: decimal.RequireFromString("54.93"),
			FuturePlanned:  decimal.NewFromInt(120),
			Obligation:     decimal.NewFromInt(168),
			Forecast:       decimal.RequireFromString("6.93"),
			HasData:        true,
			Status:         reconcile.StatusSafe,
		},
		{
			Code: "mol", Name: "Molnár Eszter", TeamKey: "team-1",
			Obligation: decimal.NewFromInt(168),
			Forecast:   decimal.RequireFromString("-48"),
			Status:     reconcile.StatusAtRisk,
			Note:       "projected 48.00 hours short of the monthly obligation",
		},
	}
}

func TestWriteScheduleCSV_OneRowPerDay(t *testing.T) {
	sched := testSchedule(t)

	var buf bytes.Buffer
	require.NoError(t, export.WriteScheduleCSV(&buf, sched))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, len(sched.Days)+1) // header + days
	assert.Equal(t, "date", records[0][0])
}

func TestWriteReconciliationCSV_OneRowPerEmployee(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteReconciliationCSV(&buf, testRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "kov", records[1][0])
	assert.Equal(t, "6.93", records[1][7])
	assert.Equal(t, "at_risk", records[2][9])
}

func TestWriteReconciliationXLSX_Writes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteReconciliationXLSX(&buf, testRows(), "March 2026"))

	// XLSX files are zip archives.
	assert.True(t, strings.HasPrefix(buf.String(), "PK"))
}

func TestWriteSchedulePDF_Writes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteSchedulePDF(&buf, testSchedule(t)))

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}
