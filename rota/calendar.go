/*
calendar.go - The calendar rule engine

PURPOSE:
  Classifies a single (date, team) pair into a shift kind and net hours.
  This is the one rule everything else derives from.

THE ROTATION:
  Two teams alternate weekend coverage by ISO-week parity.

  Long week (parity matches):
    The team works every day Monday-Sunday. Weekdays are full shifts;
    Saturday, Sunday, and any holiday get the short shift. A holiday
    overrides a full weekday shift.

  Short week (parity does not match):
    Monday, Saturday, and Sunday are off. Tuesday-Friday are full shifts
    unless the day is a holiday, in which case the day is still worked
    but at the short holiday duration.

  A holiday landing on an off day has no effect: holiday status is only
  consulted when the day would otherwise be worked.

SHORT-FRIDAY MODE:
  An optional roster variant where a worked, non-holiday Friday gets a
  third, intermediate shift length instead of the full one.

SEE ALSO:
  - plan.go: aggregates ClassifyDay over month ranges
*/
package rota

import (
	"fmt"
	"time"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine evaluates the calendar rule for a fixed set of teams, holidays
// and shift lengths. All fields are immutable after construction; the
// engine is safe for concurrent readers and every method is a pure
// function of its inputs.
type Engine struct {
	teams       map[string]Team
	holidays    HolidaySet
	shifts      Shifts
	shortFriday bool
}

// New constructs an engine. The team slice must be non-empty; keys must
// be unique.
func New(teams []Team, holidays HolidaySet, shifts Shifts, shortFriday bool) (*Engine, error) {
	if len(teams) == 0 {
		return nil, fmt.Errorf("rota: no teams configured")
	}
	byKey := make(map[string]Team, len(teams))
	for _, t := range teams {
		if _, dup := byKey[t.Key]; dup {
			return nil, fmt.Errorf("rota: duplicate team key %q", t.Key)
		}
		if t.Parity != ParityEven && t.Parity != ParityOdd {
			return nil, fmt.Errorf("rota: team %q has invalid weekend parity %q", t.Key, t.Parity)
		}
		byKey[t.Key] = t
	}
	return &Engine{teams: byKey, holidays: holidays, shifts: shifts, shortFriday: shortFriday}, nil
}

// Team resolves a configured team by key.
func (e *Engine) Team(key string) (Team, error) {
	t, ok := e.teams[key]
	if !ok {
		return Team{}, &UnknownTeamError{Key: key}
	}
	return t, nil
}

// Teams returns the configured teams keyed by team key.
func (e *Engine) Teams() map[string]Team {
	out := make(map[string]Team, len(e.teams))
	for k, v := range e.teams {
		out[k] = v
	}
	return out
}

// Shifts returns the configured shift lengths.
func (e *Engine) Shifts() Shifts { return e.shifts }

// ShortFriday reports whether short-Friday mode is active.
func (e *Engine) ShortFriday() bool { return e.shortFriday }

// =============================================================================
// CLASSIFICATION
// =============================================================================

// ClassifyDay applies the calendar rule to one (date, team) pair.
// Total over any valid date; the only failure is an unknown team key.
func (e *Engine) ClassifyDay(d Date, teamKey string) (DayClassification, error) {
	team, err := e.Team(teamKey)
	if err != nil {
		return DayClassification{}, err
	}
	return e.classify(d, team), nil
}

func (e *Engine) classify(d Date, team Team) DayClassification {
	c := DayClassification{
		Date:     d,
		Week:     d.ISOWeek(),
		EvenWeek: d.IsEvenISOWeek(),
		LongWeek: team.LongWeekAt(d),
		Holiday:  e.holidays.Contains(d),
	}

	weekend := d.IsWeekend()

	if !c.LongWeek {
		// Short week: Monday and the weekend are rest days, holiday or not.
		if d.Weekday() == time.Monday {
			c.Kind = ShiftOff
			c.Note = "rest day (Monday)"
			return c
		}
		if weekend {
			c.Kind = ShiftOff
			c.Note = "rest day (weekend)"
			return c
		}
	}

	switch {
	case c.Holiday:
		c.Kind = ShiftShort
		c.Note = "holiday shift"
	case weekend:
		c.Kind = ShiftShort
		c.Note = "weekend shift"
	case e.shortFriday && d.Weekday() == time.Friday:
		c.Kind = ShiftShortFriday
		c.Note = "short Friday shift"
	default:
		c.Kind = ShiftFull
		c.Note = "regular shift"
	}

	c.NetHours = e.shifts.For(c.Kind)
	return c
}
