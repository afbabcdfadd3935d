/*
errors.go - Centralized error types for the rota engine

PURPOSE:
  Configuration-level failures are the only fatal errors this package
  produces. The rule engine itself is total over valid dates; a bad
  team key or an impossible year/month means the caller's configuration
  or input is wrong, and the whole computation aborts.

USAGE:
  Callers can branch with errors.Is:

    if errors.Is(err, rota.ErrUnknownTeam) { ... }
*/
package rota

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTeam is returned when a team key has no configured team.
	// This is a configuration error: fatal, never retried.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrInvalidDate is returned for an impossible (year, month) input
	// or a day outside the plausible planning range.
	ErrInvalidDate = errors.New("invalid date")
)

// UnknownTeamError carries the offending key.
type UnknownTeamError struct {
	Key string
}

func (e *UnknownTeamError) Error() string { return fmt.Sprintf("unknown team %q", e.Key) }
func (e *UnknownTeamError) Unwrap() error { return ErrUnknownTeam }

// InvalidDateError carries the rejected input.
type InvalidDateError struct {
	Year  int
	Month int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: year=%d month=%d", e.Year, e.Month)
}
func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }
