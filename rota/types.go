/*
Package rota implements the shift-schedule rule engine for a rotating
two-team workforce.

PURPOSE:
  Decides, for every calendar day and team, whether the team works a full
  shift, a short shift, or is off, and how many net paid hours the day is
  worth. On top of that single rule it derives monthly plans (summed net
  hours over a day range) and the statutory monthly obligation.

KEY CONCEPTS IN THIS FILE (types.go):
  - WeekendParity: which ISO-week parity puts a team on weekend duty
  - Team: a rostered crew with a fixed parity
  - ShiftKind / DayClassification: the per-day ruling
  - Shifts: the fixed net-hour value of each shift kind

DESIGN PRINCIPLES:
  1. Purity: classification is a total function of (date, team, config);
     recomputing from the same inputs always yields the same output.
  2. Precision: decimal.Decimal for all hour values, no float math.
  3. Explicit configuration: teams, holidays, and shift lengths are
     constructed once and passed in; nothing reads module-level state.

SEE ALSO:
  - calendar.go: the classification rule
  - plan.go: monthly plan and statutory obligation
*/
package rota

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TEAMS
// =============================================================================

// WeekendParity selects the ISO-week parity during which a team is
// rostered for weekend coverage.
type WeekendParity string

const (
	ParityEven WeekendParity = "even"
	ParityOdd  WeekendParity = "odd"
)

// Team is one of the two rotating crews. Immutable after configuration.
type Team struct {
	Key    string
	Name   string
	Parity WeekendParity
}

// LongWeekAt reports whether the given date falls in the team's long
// week, i.e. the week it works through the weekend.
func (t Team) LongWeekAt(d Date) bool {
	return (t.Parity == ParityEven) == d.IsEvenISOWeek()
}

// =============================================================================
// SHIFT KINDS
// =============================================================================

type ShiftKind string

const (
	// ShiftFull is a regular weekday shift.
	ShiftFull ShiftKind = "full_workday"

	// ShiftShort is the shortened weekend/holiday shift. A holiday on a
	// worked weekday also gets this kind: holiday pay shortens the shift,
	// it does not grant the day off.
	ShiftShort ShiftKind = "short_weekend_or_holiday"

	// ShiftShortFriday is the optional shortened Friday shift. Only
	// produced when the engine runs with short-Friday mode enabled.
	ShiftShortFriday ShiftKind = "short_friday"

	// ShiftOff means the team is not rostered that day.
	ShiftOff ShiftKind = "off"
)

// DayClassification is the rule engine's ruling for one (date, team)
// pair. Derived, never persisted.
type DayClassification struct {
	Date     Date
	Kind     ShiftKind
	NetHours decimal.Decimal
	Week     int
	EvenWeek bool
	LongWeek bool
	Holiday  bool
	Note     string
}

// Off reports whether the day is a rest day.
func (c DayClassification) Off() bool { return c.Kind == ShiftOff }

// =============================================================================
// SHIFT LENGTHS
// =============================================================================

// Shifts holds the fixed net-hour value of each shift kind, derived as
// gross shift span minus the unpaid break. These are the only values
// NetHours can take; nothing is ever interpolated.
type Shifts struct {
	Full         decimal.Decimal // 05:50-13:30 gross, 7.1667 net
	Short        decimal.Decimal // 05:50-12:00 gross, 5.6667 net
	ShortFriday  decimal.Decimal // 05:50-12:30 gross, 6.1667 net
	StatutoryDay decimal.Decimal // legal baseline per weekday
}

// NetHours computes a net shift length from gross span and unpaid break,
// rounded to 4 decimal places.
func NetHours(gross, unpaidBreak time.Duration) decimal.Decimal {
	minutes := int64((gross - unpaidBreak) / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(4)
}

// DefaultShifts returns the organization's shift lengths: 7h40m and
// 6h10m gross with a 30m break, 6h40m gross for the optional short
// Friday, and the 8-hour statutory day.
func DefaultShifts() Shifts {
	return Shifts{
		Full:         NetHours(7*time.Hour+40*time.Minute, 30*time.Minute),
		Short:        NetHours(6*time.Hour+10*time.Minute, 30*time.Minute),
		ShortFriday:  NetHours(6*time.Hour+40*time.Minute, 30*time.Minute),
		StatutoryDay: decimal.NewFromInt(8),
	}
}

// For returns the net hours for a shift kind.
func (s Shifts) For(kind ShiftKind) decimal.Decimal {
	switch kind {
	case ShiftFull:
		return s.Full
	case ShiftShort:
		return s.Short
	case ShiftShortFriday:
		return s.ShortFriday
	default:
		return decimal.Zero
	}
}
