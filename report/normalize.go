/*
Package report extracts per-employee time values from the raw page text
of scanned timesheet reports.

PURPOSE:
  The attendance system exports monthly reports as text-bearing PDFs.
  This package turns each page's text into a mapping from employee code
  to a decimal hours value, matching employees by display name and
  values by fixed label patterns that are a bit-exact contract with the
  report layout.

KEY CONCEPTS:
  - Normalize: case- and diacritic-insensitive folding for name matching
  - Clock: a signed HH:MM token and its decimal-hours value
  - Extractor: page scanning with the never-overwrite-with-nothing rule
  - PageSource: the external PDF text-extraction collaborator

FAILURE POLICY:
  Parsing never fails the run. Malformed tokens degrade to an absent
  value, unmatched employees are simply missing from the output map,
  and pages with no extractable text are skipped. Only the caller
  decides whether "no data" is a problem.
*/
package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes to NFD, drops combining marks, and
// recomposes. "Prenášaný" becomes "Prenasany".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases and strips diacritics for name matching.
// Matching is substring-based, so roster names must be validated as
// collision-free at configuration load (see config.Validate).
func Normalize(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
