package reconcile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/config"
	"github.com/warp/shift-engine/reconcile"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// stubPlanner returns fixed plan numbers so formula behavior can be
// pinned independently of the calendar.
type stubPlanner struct {
	future     decimal.Decimal
	obligation decimal.Decimal
}

func (s *stubPlanner) PlanHours(year, month int, teamKey string, startDay int) (decimal.Decimal, error) {
	return s.future, nil
}

func (s *stubPlanner) Obligation(year, month int) (decimal.Decimal, error) {
	return s.obligation, nil
}

func testRoster() []config.Employee {
	return []config.Employee{
		{Code: "kov", Name: "Kovács Péter", TeamKey: "team-1"},
		{Code: "mol", Name: "Molnár Eszter", TeamKey: "team-1"},
		{Code: "vin", Name: "Vincze Tamás", TeamKey: "team-2"},
	}
}

func newReconciler(formula reconcile.Formula, future, obligation string) *reconcile.Reconciler {
	return &reconcile.Reconciler{
		Planner: &stubPlanner{
			future:     decimal.RequireFromString(future),
			obligation: decimal.RequireFromString(obligation),
		},
		Roster:  testRoster(),
		Formula: formula,
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// =============================================================================
// FORMULAS
// =============================================================================

func TestReconcile_AdditiveFormula_EndToEnd(t *testing.T) {
	// GIVEN: brought_forward=54.93, no current file, future_planned=120,
	//        obligation=168
	// WHEN: Reconciling with the additive formula
	// THEN: forecast = 54.93 + 0 + 120 - 168 = 6.93, SAFE

	r := newReconciler(reconcile.FormulaAdditive, "120", "168")

	rows, err := r.Reconcile(reconcile.Input{
		Year: 2026, Month: 1, TeamKey: "team-1",
		BroughtForward: map[string]decimal.Decimal{"kov": d("54.93")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	kov := rows[0]
	require.Equal(t, "kov", kov.Code)
	assert.Equal(t, "6.93", kov.Forecast.StringFixed(2))
	assert.Equal(t, reconcile.StatusSafe, kov.Status)
	assert.True(t, kov.HasData)
	assert.Empty(t, kov.Note)
}

func TestReconcile_AdditiveFormula_AddsWorkedHours(t *testing.T) {
	r := newReconciler(reconcile.FormulaAdditive, "50", "168")

	rows, err := r.Reconcile(reconcile.Input{
		Year: 2026, Month: 1, TeamKey: "team-1", CutoffDay: 20,
		BroughtForward: map[string]decimal.Decimal{"kov": d("-2.5")},
		Worked:         map[string]decimal.Decimal{"kov": d("110")},
	})
	require.NoError(t, err)

	// -2.5 + 110 + 50 - 168 = -10.5
	kov := rows[0]
	assert.Equal(t, "-10.50", kov.Forecast.StringFixed(2))
	assert.Equal(t, reconcile.StatusAtRisk, kov.Status)
	assert.Contains(t, kov.Note, "10.50")
}

func TestReconcile_CumulativeFormula_SnapshotSupersedesCarryover(t *testing.T) {
	// GIVEN: A cumulative snapshot exists for the employee
	// WHEN: Reconciling with the cumulative formula
	// THEN: brought_forward is ignored: 130 + 50 - 168 = 12

	r := newReconciler(reconcile.FormulaCumulative, "50", "168")

	rows, err := r.Reconcile(reconcile.Input{
		Year: 2026, Month: 1, TeamKey: "team-1",
		BroughtForward: map[string]decimal.Decimal{"kov": d("999")},
		Worked:         map[string]decimal.Decimal{"kov": d("130")},
	})
	require.NoError(t, err)

	assert.Equal(t, "12.00", rows[0].Forecast.StringFixed(2))
}

func TestReconcile_CumulativeFormula_FallsBackWithoutSnapshot(t *testing.T) {
	// GIVEN: No current snapshot for the employee
	// WHEN: Reconciling with the cumulative formula
	// THEN: The carried balance still counts: 10 + 50 - 168 = -108

	r := newReconciler(reconcile.FormulaCumulative, "50", "168")

	rows, err := r.Reconcile(reconcile.Input{
		Year: 2026, Month: 1, TeamKey: "team-1",
		BroughtForward: map[string]decimal.Decimal{"kov": d("10")},
	})
	require.NoError(t, err)

	assert.Equal(t, "-108.00", rows[0].Forecast.StringFixed(2))
	assert.Equal(t, reconcile.StatusAtRisk, rows[0].Status)
}

// =============================================================================
// ROSTER COVERAGE
// =============================================================================

func TestReconcile_EveryRegisteredEmployeeAppearsOnce(t *testing.T) {
	// GIVEN: Report data for only one of three employees
	// WHEN: Reconciling the full roster
	// THEN: All three appear exactly once; the others carry HasData=false

	r := newReconciler(reconcile.FormulaAdditive, "120", "168")

	rows, err := r.Reconcile(reconcile.Input{
		Year: 2026, Month: 1,
		Worked: map[string]decimal.Decimal{"vin": d("100")},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	seen := map[string]int{}
	for _, row := range rows {
		seen[row.Code]++
	}
	for _, code := range []string{"kov", "mol", "vin"} {
		assert.Equal(t, 1, seen[code], "employee %s", code)
	}
}

func TestReconcile_MissingData_DegradesToZeroWithFlag(t *testing.T) {
	r := newReconciler(reconcile.FormulaAdditive, "120", "168")

	rows, err := r.Reconcile(reconcile.Input{Year: 2026, Month: 1, TeamKey: "team-2"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	vin := rows[0]
	assert.False(t, vin.HasData)
	assert.True(t, vin.BroughtForward.IsZero())
	assert.True(t, vin.WorkedSoFar.IsZero())
	// 0 + 0 + 120 - 168 = -48: projected short, but a classification,
	// not an error.
	assert.Equal(t, reconcile.StatusAtRisk, vin.Status)
}

func TestReconcile_TeamFilter(t *testing.T) {
	r := newReconciler(reconcile.FormulaAdditive, "120", "168")

	rows, err := r.Reconcile(reconcile.Input{Year: 2026, Month: 1, TeamKey: "team-1"})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "team-1", row.TeamKey)
	}
}

func TestReconcile_UnknownTeam_NoRows(t *testing.T) {
	r := newReconciler(reconcile.FormulaAdditive, "120", "168")

	_, err := r.Reconcile(reconcile.Input{Year: 2026, Month: 1, TeamKey: "team-9"})
	assert.Error(t, err)
}

func TestReconcile_CutoffOutOfRange(t *testing.T) {
	r := newReconciler(reconcile.FormulaAdditive, "120", "168")

	_, err := r.Reconcile(reconcile.Input{Year: 2026, Month: 1, CutoffDay: 40})
	assert.Error(t, err)
}

// =============================================================================
// FORMULA PARSING
// =============================================================================

func TestParseFormula(t *testing.T) {
	f, err := reconcile.ParseFormula("")
	require.NoError(t, err)
	assert.Equal(t, reconcile.FormulaAdditive, f)

	f, err = reconcile.ParseFormula("cumulative")
	require.NoError(t, err)
	assert.Equal(t, reconcile.FormulaCumulative, f)

	_, err = reconcile.ParseFormula("averaged")
	assert.Error(t, err)
}
