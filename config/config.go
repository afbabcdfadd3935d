/*
Package config holds the static configuration of the modeled
organization: the two rotating teams, the employee roster, the public
holiday calendar, shift lengths, and the reconciliation formula choice.

PURPOSE:
  Everything here is constructed exactly once at process start and then
  passed by reference into the engine, extractor, and reconciler. No
  component reads ambient module-level state.

VALIDATION:
  Because report matching is best-effort substring search on normalized
  names, a configuration is rejected when two employees' normalized
  names collide or when one normalized name is a substring of another;
  such a roster could silently attribute one employee's hours to
  another.

SEE ALSO:
  - rota: consumes Teams, Holidays, Shifts
  - report: consumes the normalized-name roster
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/shift-engine/report"
	"github.com/warp/shift-engine/rota"
)

// ErrRosterInvalid marks a malformed static configuration. Fatal; the
// process refuses to start.
var ErrRosterInvalid = errors.New("invalid roster configuration")

// =============================================================================
// TYPES
// =============================================================================

// Employee is one roster entry. The display name is what report
// matching looks for, case- and diacritic-insensitively, in page text.
type Employee struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	TeamKey string `yaml:"team"`
}

// Config is the full static configuration. Immutable after Load.
type Config struct {
	Teams       []rota.Team
	Employees   []Employee
	Holidays    rota.HolidaySet
	Shifts      rota.Shifts
	ShortFriday bool
	Formula     string // "additive" or "cumulative", see reconcile
}

// fileConfig is the YAML wire shape.
type fileConfig struct {
	ShortFriday bool   `yaml:"short_friday"`
	Formula     string `yaml:"formula"`
	Teams       []struct {
		Key    string `yaml:"key"`
		Name   string `yaml:"name"`
		Parity string `yaml:"weekend_parity"`
	} `yaml:"teams"`
	Employees []Employee `yaml:"employees"`
	Holidays  []string   `yaml:"holidays"`
	Shifts    *struct {
		FullGrossMinutes   int `yaml:"full_gross_minutes"`
		ShortGrossMinutes  int `yaml:"short_gross_minutes"`
		FridayGrossMinutes int `yaml:"friday_gross_minutes"`
		BreakMinutes       int `yaml:"break_minutes"`
	} `yaml:"shifts"`
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// Default returns the modeled organization: two teams rotating weekend
// coverage by ISO-week parity and the 2026 public-holiday calendar.
func Default() *Config {
	holidays, err := rota.NewHolidaySet(
		"2026-01-01", "2026-01-06", "2026-04-03", "2026-04-06",
		"2026-05-01", "2026-05-08", "2026-07-05", "2026-08-29",
		"2026-09-01", "2026-09-15", "2026-11-01", "2026-11-17",
		"2026-12-24", "2026-12-25", "2026-12-26",
	)
	if err != nil {
		panic(err) // literal dates above, cannot fail
	}

	return &Config{
		Teams: []rota.Team{
			{Key: "team-1", Name: "1. Team (VIS, RE, MÁ, JK, TK)", Parity: rota.ParityEven},
			{Key: "team-2", Name: "2. Team (VIN, VT, VCS, ME)", Parity: rota.ParityOdd},
		},
		Employees: []Employee{
			{Code: "vis", Name: "Visnyai Sándor", TeamKey: "team-1"},
			{Code: "re", Name: "Répás Ottó", TeamKey: "team-1"},
			{Code: "ma", Name: "Máté Gergely", TeamKey: "team-1"},
			{Code: "jk", Name: "Juhász Kálmán", TeamKey: "team-1"},
			{Code: "tk", Name: "Tóth Krisztián", TeamKey: "team-1"},
			{Code: "vin", Name: "Vincze Tamás", TeamKey: "team-2"},
			{Code: "vt", Name: "Varga Tibor", TeamKey: "team-2"},
			{Code: "vcs", Name: "Vass Csaba", TeamKey: "team-2"},
			{Code: "me", Name: "Molnár Eszter", TeamKey: "team-2"},
		},
		Holidays:    holidays,
		Shifts:      rota.DefaultShifts(),
		ShortFriday: false,
		Formula:     "additive",
	}
}

// Load reads a YAML configuration file. Fields left empty fall back to
// the defaults, so a file may override only the roster or only the
// holiday list.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := Default()
	cfg.ShortFriday = fc.ShortFriday
	if fc.Formula != "" {
		cfg.Formula = fc.Formula
	}
	if len(fc.Teams) > 0 {
		cfg.Teams = nil
		for _, t := range fc.Teams {
			cfg.Teams = append(cfg.Teams, rota.Team{
				Key:    t.Key,
				Name:   t.Name,
				Parity: rota.WeekendParity(t.Parity),
			})
		}
	}
	if len(fc.Employees) > 0 {
		cfg.Employees = fc.Employees
	}
	if len(fc.Holidays) > 0 {
		cfg.Holidays, err = rota.NewHolidaySet(fc.Holidays...)
		if err != nil {
			return nil, fmt.Errorf("config: holidays: %w", err)
		}
	}
	if fc.Shifts != nil {
		brk := time.Duration(fc.Shifts.BreakMinutes) * time.Minute
		cfg.Shifts = rota.Shifts{
			Full:         rota.NetHours(time.Duration(fc.Shifts.FullGrossMinutes)*time.Minute, brk),
			Short:        rota.NetHours(time.Duration(fc.Shifts.ShortGrossMinutes)*time.Minute, brk),
			ShortFriday:  rota.NetHours(time.Duration(fc.Shifts.FridayGrossMinutes)*time.Minute, brk),
			StatutoryDay: decimal.NewFromInt(8),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the structural invariants the rest of the system
// assumes. Any violation is a ConfigurationError: fatal, not retried.
func (c *Config) Validate() error {
	if len(c.Teams) == 0 {
		return fmt.Errorf("%w: no teams configured", ErrRosterInvalid)
	}
	teamKeys := make(map[string]bool, len(c.Teams))
	for _, t := range c.Teams {
		if t.Key == "" {
			return fmt.Errorf("%w: team with empty key", ErrRosterInvalid)
		}
		if t.Parity != rota.ParityEven && t.Parity != rota.ParityOdd {
			return fmt.Errorf("%w: team %q has invalid weekend parity %q", ErrRosterInvalid, t.Key, t.Parity)
		}
		if teamKeys[t.Key] {
			return fmt.Errorf("%w: duplicate team key %q", ErrRosterInvalid, t.Key)
		}
		teamKeys[t.Key] = true
	}

	if len(c.Employees) == 0 {
		return fmt.Errorf("%w: empty employee roster", ErrRosterInvalid)
	}
	codes := make(map[string]bool, len(c.Employees))
	normalized := make(map[string]string, len(c.Employees))
	for _, e := range c.Employees {
		if e.Code == "" || e.Name == "" {
			return fmt.Errorf("%w: employee with empty code or name", ErrRosterInvalid)
		}
		if !teamKeys[e.TeamKey] {
			return fmt.Errorf("%w: employee %q references unknown team %q", ErrRosterInvalid, e.Code, e.TeamKey)
		}
		if codes[e.Code] {
			return fmt.Errorf("%w: duplicate employee code %q", ErrRosterInvalid, e.Code)
		}
		codes[e.Code] = true

		n := report.Normalize(e.Name)
		if other, dup := normalized[n]; dup {
			return fmt.Errorf("%w: employees %q and %q normalize to the same name %q",
				ErrRosterInvalid, other, e.Code, n)
		}
		normalized[n] = e.Code
	}

	// Substring collisions: name matching is substring search, so one
	// normalized name contained in another would attribute pages to the
	// wrong person.
	for a, codeA := range normalized {
		for b, codeB := range normalized {
			if a == b {
				continue
			}
			if strings.Contains(a, b) {
				return fmt.Errorf("%w: employee %q name is a substring of %q name after normalization",
					ErrRosterInvalid, codeB, codeA)
			}
		}
	}

	return nil
}

// =============================================================================
// DERIVED VIEWS
// =============================================================================

// Roster builds the normalized-name lookup used by the extractor,
// restricted to the given team when teamKey is non-empty.
func (c *Config) Roster(teamKey string) report.Roster {
	roster := make(report.Roster)
	for _, e := range c.Employees {
		if teamKey != "" && e.TeamKey != teamKey {
			continue
		}
		roster[report.Normalize(e.Name)] = e.Code
	}
	return roster
}

// TeamEmployees returns the roster entries for one team, or all
// employees when teamKey is empty, in configuration order.
func (c *Config) TeamEmployees(teamKey string) []Employee {
	var out []Employee
	for _, e := range c.Employees {
		if teamKey == "" || e.TeamKey == teamKey {
			out = append(out, e)
		}
	}
	return out
}

// Engine constructs the calendar rule engine from this configuration.
func (c *Config) Engine() (*rota.Engine, error) {
	return rota.New(c.Teams, c.Holidays, c.Shifts, c.ShortFriday)
}
