package anonymizer

import (
	"strings"

	"github.com/gedtools/gedscrub/internal/gedcom"
)

// Replacement literals for redacted fields.
const (
	redactedText  = "[anonymized text]"
	redactedValue = "[anonymized]"
)

// policyFunc computes the substituted value for a decomposed line. An empty
// return means the tag is emitted with no value.
type policyFunc func(a *Anonymizer, line gedcom.Line) string

// Tag sets sharing a policy. Kept as slices so the table below stays
// declarative and the rule-file loader can name them.
var (
	// Free text content.
	textTags = []string{"NOTE", "TEXT", "CONT", "CONC"}

	// Name parts.
	nameParts = []string{"GIVN", "SURN", "NPFX", "NSFX", "NICK"}

	// Address components.
	addressTags = []string{"ADDR", "ADR1", "ADR2", "CITY", "STAE", "POST", "CTRY"}

	// Contact information.
	contactTags = []string{"PHON", "EMAIL", "WWW", "FAX"}
)

func policyName(a *Anonymizer, line gedcom.Line) string {
	return a.anonymizeName(line.Value)
}

func policyPlace(a *Anonymizer, line gedcom.Line) string {
	if a.opts.KeepPlaces {
		return line.Value
	}
	return a.anonymizePlace(line.Value)
}

func policyDate(a *Anonymizer, line gedcom.Line) string {
	if a.opts.KeepDates {
		return line.Value
	}
	return normalizeDate(line.Value)
}

// policyRedactText blanks free text content.
func policyRedactText(_ *Anonymizer, line gedcom.Line) string {
	if strings.TrimSpace(line.Value) == "" {
		return ""
	}
	return redactedText
}

// policyRedactValue blanks a single identifying field.
func policyRedactValue(_ *Anonymizer, line gedcom.Line) string {
	if strings.TrimSpace(line.Value) == "" {
		return ""
	}
	return redactedValue
}

// policyTopLevelTitle redacts TITL only at level 1 (a source title). Nested
// titles, e.g. inside citation detail, pass through.
func policyTopLevelTitle(a *Anonymizer, line gedcom.Line) string {
	if line.Level == "1" {
		return policyRedactValue(a, line)
	}
	return line.Value
}

// policyPassThrough returns the value verbatim. Used for preserve overrides.
func policyPassThrough(_ *Anonymizer, line gedcom.Line) string {
	return line.Value
}

// buildPolicies assembles the tag dispatch table: built-in rules first, then
// rule-file extensions, then preserve overrides (preserve wins).
func buildPolicies(rules *RuleSet) map[string]policyFunc {
	policies := map[string]policyFunc{
		"NAME": policyName,
		"PLAC": policyPlace,
		"DATE": policyDate,
		"TITL": policyTopLevelTitle,
	}
	for _, tag := range textTags {
		policies[tag] = policyRedactText
	}
	for _, group := range [][]string{nameParts, addressTags, contactTags} {
		for _, tag := range group {
			policies[tag] = policyRedactValue
		}
	}

	if rules == nil {
		return policies
	}
	for _, tag := range rules.RedactText {
		policies[tag] = policyRedactText
	}
	for _, tag := range rules.RedactValue {
		policies[tag] = policyRedactValue
	}
	for _, tag := range rules.Preserve {
		policies[tag] = policyPassThrough
	}
	return policies
}
