package report

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK TOKEN - signed HH:MM
// =============================================================================

// Token grammar: optional +/-, one or more digits, ':', exactly two
// digit minutes. "54:56", "+54:56", "-2:30".
var clockToken = regexp.MustCompile(`^([+-]?)(\d+):(\d{2})$`)

// ParseClock converts an HH:MM token to decimal hours:
// sign x (hours + minutes/60). The second return value is false for a
// malformed token, so callers can distinguish "genuinely zero" from
// "failed to parse"; the decimal is zero in that case and parsing never
// panics.
func ParseClock(token string) (decimal.Decimal, bool) {
	m := clockToken.FindStringSubmatch(token)
	if m == nil {
		return decimal.Zero, false
	}

	hrs, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return decimal.Zero, false
	}
	mins, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil || mins > 59 {
		return decimal.Zero, false
	}

	value := decimal.NewFromInt(hrs*60 + mins).Div(decimal.NewFromInt(60))
	if m[1] == "-" {
		value = value.Neg()
	}
	return value, true
}
