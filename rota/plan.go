/*
plan.go - Monthly plan calculator

PURPOSE:
  Aggregates the calendar rule over month ranges to answer two distinct
  questions:

  PlanHours:  "How many net hours is this team rostered for from day N
              to the end of the month?" (team-specific, follows the
              rotation)

  Obligation: "How many hours does the law expect this month?"
              (team-independent: non-holiday weekdays x 8)

  The two are intentionally decoupled. The rostered pattern works
  weekends and shortens holidays; the statutory baseline ignores both
  and counts plain weekdays. Their difference is exactly the overtime
  or deficit the reconciler forecasts.

SEE ALSO:
  - calendar.go: the per-day rule
  - reconcile: consumes PlanHours and Obligation
*/
package rota

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plausible planning range. Inputs outside it are configuration or
// input mistakes, not real planning requests.
const (
	minPlanYear = 2000
	maxPlanYear = 2100
)

func validateMonth(year, month int) error {
	if year < minPlanYear || year > maxPlanYear || month < 1 || month > 12 {
		return &InvalidDateError{Year: year, Month: month}
	}
	return nil
}

// =============================================================================
// PLANNED HOURS
// =============================================================================

// PlanHours sums net hours for the team over startDay..last day of the
// month. A startDay past the month's end yields zero: nothing left to
// plan. Monotonically non-increasing in startDay.
func (e *Engine) PlanHours(year, month int, teamKey string, startDay int) (decimal.Decimal, error) {
	if err := validateMonth(year, month); err != nil {
		return decimal.Zero, err
	}
	team, err := e.Team(teamKey)
	if err != nil {
		return decimal.Zero, err
	}
	if startDay < 1 {
		startDay = 1
	}

	total := decimal.Zero
	last := DaysInMonth(year, time.Month(month))
	for day := startDay; day <= last; day++ {
		c := e.classify(NewDate(year, time.Month(month), day), team)
		total = total.Add(c.NetHours)
	}
	return total, nil
}

// Obligation returns the statutory hours for the month: non-holiday
// weekdays times the statutory day length. Independent of team, start
// day, and short-Friday mode.
func (e *Engine) Obligation(year, month int) (decimal.Decimal, error) {
	if err := validateMonth(year, month); err != nil {
		return decimal.Zero, err
	}

	days := 0
	last := DaysInMonth(year, time.Month(month))
	for day := 1; day <= last; day++ {
		d := NewDate(year, time.Month(month), day)
		if d.IsWeekend() || e.holidays.Contains(d) {
			continue
		}
		days++
	}
	return e.shifts.StatutoryDay.Mul(decimal.NewFromInt(int64(days))), nil
}

// =============================================================================
// SCHEDULE LOG SHEET
// =============================================================================

// MonthSchedule is the day-by-day log sheet for one team and month,
// with the aggregates shown on the planning dashboard.
type MonthSchedule struct {
	Year       int
	Month      time.Month
	Team       Team
	Days       []DayClassification
	TotalHours decimal.Decimal
	WorkDays   int
	OffDays    int
}

// Schedule produces the full log sheet for a month.
func (e *Engine) Schedule(year, month int, teamKey string) (*MonthSchedule, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	team, err := e.Team(teamKey)
	if err != nil {
		return nil, err
	}

	sched := &MonthSchedule{
		Year:       year,
		Month:      time.Month(month),
		Team:       team,
		TotalHours: decimal.Zero,
	}
	last := DaysInMonth(year, time.Month(month))
	for day := 1; day <= last; day++ {
		c := e.classify(NewDate(year, time.Month(month), day), team)
		sched.Days = append(sched.Days, c)
		sched.TotalHours = sched.TotalHours.Add(c.NetHours)
		if c.Off() {
			sched.OffDays++
		} else {
			sched.WorkDays++
		}
	}
	return sched, nil
}
