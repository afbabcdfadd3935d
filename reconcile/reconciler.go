/*
Package reconcile merges extracted report data with the monthly plan
into an end-of-month overtime forecast per employee.

PURPOSE:
  Given a prior-period closing balance, a mid-period worked-hours
  snapshot, and the plan for the remaining days, forecast where each
  employee's balance lands at month end and flag everyone projected to
  finish short of the statutory obligation.

FORMULA CHOICE:
  The source system's history carried two incompatible reconciliation
  formulas. Both are implemented and the choice is explicit
  configuration:

  FormulaAdditive (default):
    forecast = brought_forward + worked_so_far + future_planned - obligation

  FormulaCumulative:
    the current snapshot already folds the carried balance in, so once a
    current value exists the brought-forward figure is ignored:
    forecast = current_cumulative + future_planned - obligation

  A negative forecast is NOT an error. It is the expected AT_RISK
  classification this whole pipeline exists to surface.

SEE ALSO:
  - rota: supplies PlanHours and Obligation
  - report: supplies the extracted balance maps
*/
package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-engine/config"
)

// =============================================================================
// FORMULA AND STATUS
// =============================================================================

type Formula string

const (
	FormulaAdditive   Formula = "additive"
	FormulaCumulative Formula = "cumulative"
)

// ParseFormula resolves a configured formula name. Empty selects the
// default additive formula.
func ParseFormula(s string) (Formula, error) {
	switch Formula(s) {
	case "", FormulaAdditive:
		return FormulaAdditive, nil
	case FormulaCumulative:
		return FormulaCumulative, nil
	default:
		return "", fmt.Errorf("reconcile: unknown formula %q", s)
	}
}

type Status string

const (
	StatusSafe   Status = "safe"
	StatusAtRisk Status = "at_risk"
)

// =============================================================================
// TYPES
// =============================================================================

// Planner is the slice of the rota engine the reconciler needs.
// *rota.Engine satisfies it.
type Planner interface {
	PlanHours(year, month int, teamKey string, startDay int) (decimal.Decimal, error)
	Obligation(year, month int) (decimal.Decimal, error)
}

// Input is one reconciliation request. The maps come from the report
// extractor and may be partial; absence means "no data found", which is
// distinct from an extracted zero.
type Input struct {
	Year  int
	Month int

	// TeamKey restricts the run to one team's roster. Empty reconciles
	// every registered employee against their own team's plan.
	TeamKey string

	// CutoffDay is the last day of the month already covered by the
	// worked snapshot; planning resumes the day after. Zero means no
	// days are covered and the whole month is still ahead.
	CutoffDay int

	BroughtForward map[string]decimal.Decimal
	Worked         map[string]decimal.Decimal
}

// Row is the forecast for one employee. Every registered employee of
// the selected scope appears exactly once, whether or not report data
// was found.
type Row struct {
	Code    string
	Name    string
	TeamKey string

	BroughtForward decimal.Decimal
	WorkedSoFar    decimal.Decimal
	FuturePlanned  decimal.Decimal
	Obligation     decimal.Decimal
	Forecast       decimal.Decimal

	HasData bool
	Status  Status
	Note    string
}

// Reconciler combines the plan calculator with the static roster.
type Reconciler struct {
	Planner Planner
	Roster  []config.Employee
	Formula Formula
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Reconcile produces one row per registered employee in scope. Missing
// report data degrades to zero with HasData=false, never to omission.
func (r *Reconciler) Reconcile(in Input) ([]Row, error) {
	if in.CutoffDay < 0 || in.CutoffDay > 31 {
		return nil, fmt.Errorf("reconcile: cutoff day %d out of range", in.CutoffDay)
	}

	obligation, err := r.Planner.Obligation(in.Year, in.Month)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, e := range r.Roster {
		if in.TeamKey != "" && e.TeamKey != in.TeamKey {
			continue
		}

		future, err := r.Planner.PlanHours(in.Year, in.Month, e.TeamKey, in.CutoffDay+1)
		if err != nil {
			return nil, err
		}

		bf, bfOK := in.BroughtForward[e.Code]
		worked, workedOK := in.Worked[e.Code]

		row := Row{
			Code:           e.Code,
			Name:           e.Name,
			TeamKey:        e.TeamKey,
			BroughtForward: bf,
			WorkedSoFar:    worked,
			FuturePlanned:  future,
			Obligation:     obligation,
			HasData:        bfOK || workedOK,
		}
		row.Forecast = r.forecast(bf, worked, workedOK, future, obligation)

		if row.Forecast.IsNegative() {
			row.Status = StatusAtRisk
			row.Note = fmt.Sprintf("projected %s hours short of the monthly obligation",
				row.Forecast.Abs().StringFixed(2))
		} else {
			row.Status = StatusSafe
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("reconcile: no registered employees for team %q", in.TeamKey)
	}
	return rows, nil
}

func (r *Reconciler) forecast(bf, worked decimal.Decimal, workedOK bool, future, obligation decimal.Decimal) decimal.Decimal {
	switch r.Formula {
	case FormulaCumulative:
		if workedOK {
			// The snapshot is a cumulative total that supersedes the
			// carried balance.
			return worked.Add(future).Sub(obligation)
		}
		return bf.Add(future).Sub(obligation)
	default:
		return bf.Add(worked).Add(future).Sub(obligation)
	}
}
