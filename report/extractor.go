package report

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LABEL PATTERNS - bit-exact contract with the report layout
// =============================================================================

// The labels below match the source document's typography exactly and
// are searched in the ORIGINAL page text; only name matching runs on
// normalized text.
var (
	// Prior-period closing balance, signed.
	carryoverPattern = regexp.MustCompile(`Prenášaný nadčas do nasledujúceho mesiaca\s*([+-]?\d+:\d{2})`)

	// Cumulative worked time in the current period, unsigned.
	netWorkPattern = regexp.MustCompile(`Čas v práci \(netto\)\s*(\+?\d+:\d{2})`)

	// Later report layout: a "Spolu" total line, possibly repeated per
	// page (duplicate subtotal lines); the maximum value wins.
	totalPattern = regexp.MustCompile(`Spolu\s*([+-]?\d+:\d{2})`)
)

// Mode selects which report field is being extracted.
type Mode string

const (
	// ModeCarryover reads the prior-period closing overtime balance.
	ModeCarryover Mode = "carryover"

	// ModeWorked reads the cumulative worked time for the current
	// period, accepting either report layout.
	ModeWorked Mode = "worked"
)

// Roster maps normalized display names to employee codes. Built by the
// config package, which guarantees the normalized names are injective
// and substring-free with respect to each other.
type Roster map[string]string

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract scans every page for roster names and records the page's time
// value for each employee found. The result may be partial: an employee
// never seen in any page is absent from the map, which is distinct from
// a legitimately extracted zero.
//
// Merge rules across pages:
//   - a page with no parsable value never erases an earlier successful
//     extraction for the same employee
//   - when several values are found for one employee, the one with the
//     largest magnitude wins (tolerates duplicate subtotal lines)
func Extract(pages []string, roster Roster, mode Mode) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)

	for _, page := range pages {
		if page == "" {
			continue
		}
		value, ok := pageValue(page, mode)
		if !ok {
			continue
		}

		normalized := Normalize(page)
		for name, code := range roster {
			if !containsName(normalized, name) {
				continue
			}
			record(out, code, value)
		}
	}
	return out
}

func containsName(normalizedPage, normalizedName string) bool {
	return normalizedName != "" && strings.Contains(normalizedPage, normalizedName)
}

// pageValue finds the mode's time value in the original page text.
func pageValue(page string, mode Mode) (decimal.Decimal, bool) {
	switch mode {
	case ModeCarryover:
		if m := carryoverPattern.FindStringSubmatch(page); m != nil {
			return ParseClock(m[1])
		}
		return decimal.Zero, false

	case ModeWorked:
		if m := netWorkPattern.FindStringSubmatch(page); m != nil {
			return ParseClock(m[1])
		}
		// Fall back to the "Spolu" layout: take the maximum of all
		// occurrences on the page.
		best := decimal.Zero
		found := false
		for _, m := range totalPattern.FindAllStringSubmatch(page, -1) {
			v, ok := ParseClock(m[1])
			if !ok {
				continue
			}
			if !found || v.GreaterThan(best) {
				best = v
				found = true
			}
		}
		return best, found

	default:
		return decimal.Zero, false
	}
}

// record merges a newly extracted value with any earlier one for the
// same employee, keeping the larger magnitude.
func record(out map[string]decimal.Decimal, code string, v decimal.Decimal) {
	old, ok := out[code]
	if !ok || v.Abs().GreaterThan(old.Abs()) {
		out[code] = v
	}
}
