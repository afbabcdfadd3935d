package rota

import "time"

// =============================================================================
// DATE - Day-granularity calendar point
// =============================================================================

// Date is a calendar day in UTC. The rota domain never needs sub-day
// precision: shifts are classified per day and hours are fixed per shift
// kind, so a plain day value keeps comparisons and map keys unambiguous.
type Date struct {
	Time time.Time
}

// NewDate constructs a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
func (d Date) IsZero() bool { return d.Time.IsZero() }

// ISOWeek returns the ISO-8601 week number of the date.
func (d Date) ISOWeek() int {
	_, week := d.normalize().ISOWeek()
	return week
}

// IsEvenISOWeek reports whether the date falls in an even ISO week.
// Week parity drives the two-team weekend rotation: each team covers
// weekends only during weeks matching its configured parity.
func (d Date) IsEvenISOWeek() bool { return d.ISOWeek()%2 == 0 }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// =============================================================================
// HOLIDAY SET - Public holidays for the modeled years
// =============================================================================

// HolidaySet is an immutable set of public-holiday dates. It is built
// once at configuration load and passed into the Engine; the rule engine
// never consults ambient global state.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from YYYY-MM-DD strings. Malformed entries
// are reported rather than skipped: a silently missing holiday would
// distort every plan for that month.
func NewHolidaySet(dates ...string) (HolidaySet, error) {
	set := make(HolidaySet, len(dates))
	for _, s := range dates {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		set[d.String()] = struct{}{}
	}
	return set, nil
}

// Contains reports whether the date is a public holiday.
func (h HolidaySet) Contains(d Date) bool {
	_, ok := h[d.String()]
	return ok
}
