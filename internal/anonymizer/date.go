package anonymizer

import "regexp"

// Date shapes are matched as anchored prefixes against the original value;
// the remainder of the value is intentionally not validated. "99 ZZZ 1900"
// matches the full-date shape, and that leniency is kept: the goal is to
// scrub the value, not to interpret the GEDCOM date grammar.
var (
	// Full day-month-year date, e.g. "4 JUL 1776".
	fullDateRe = regexp.MustCompile(`^\d{1,2}\s+\w{3}\s+\d{4}`)

	// Qualified year, e.g. "ABT 1850". The qualifier survives normalization.
	qualifiedYearRe = regexp.MustCompile(`^(ABT|BEF|AFT|CAL|EST)\s+\d{4}`)

	// Bare year, possibly followed by more text, e.g. "1923".
	bareYearRe = regexp.MustCompile(`^\d{4}`)
)

// normalizeDate replaces a recognized date shape with a fixed placeholder,
// first matching rule wins. Unrecognized formats return unchanged rather
// than guessed at.
func normalizeDate(value string) string {
	switch {
	case fullDateRe.MatchString(value):
		return "1 JAN 1900"
	case qualifiedYearRe.MatchString(value):
		qualifier := qualifiedYearRe.FindStringSubmatch(value)[1]
		return qualifier + " 1900"
	case bareYearRe.MatchString(value):
		return "1900"
	default:
		return value
	}
}
