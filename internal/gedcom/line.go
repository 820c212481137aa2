package gedcom

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// bom is the UTF-8 byte order mark. It can survive into line content when a
// file's encoding wasn't handled upstream, so Parse strips it defensively.
const bom = "\uFEFF"

// Line is a structurally decomposed GEDCOM line.
//
// Level is kept as the original digit string (not an int) so that lines with
// unusual level spellings round-trip byte-for-byte through Render. Xref is
// kept verbatim including its trailing whitespace for the same reason.
type Line struct {
	// Level is the nesting depth, one or more digits.
	Level string

	// Xref is the optional @-bracketed cross-reference identifier,
	// including its trailing whitespace. Empty when absent.
	Xref string

	// Tag is the record tag (NAME, DATE, PLAC, ...).
	Tag string

	// Value is the text after the tag, with the tag's separating
	// whitespace consumed. May be empty.
	Value string
}

// Parse decomposes a raw line into its structural fields.
//
// It reports ok=false when the line does not match the grammar
// <level> <xref>? <tag> <value>?; callers emit such lines unchanged.
// Each field is scanned independently so a failure pinpoints exactly one
// constraint: missing level digits, an unterminated xref, a tag that isn't
// word characters, or trailing junk glued onto the tag.
func Parse(raw string) (Line, bool) {
	s := strings.TrimPrefix(raw, bom)

	// Level: one or more ASCII digits.
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return Line{}, false
	}
	level := s[:i]

	// Required whitespace between level and what follows.
	j := skipSpace(s, i)
	if j == i {
		return Line{}, false
	}
	i = j

	// Optional xref: @ + one-or-more non-@ + @ + whitespace, all verbatim.
	var xref string
	if i < len(s) && s[i] == '@' {
		end := strings.IndexByte(s[i+1:], '@')
		if end <= 0 {
			return Line{}, false
		}
		closing := i + 1 + end // index of the closing @
		after := skipSpace(s, closing+1)
		if after == closing+1 {
			// No separator after the closing @; not a valid xref,
			// and @ can't start a tag either.
			return Line{}, false
		}
		xref = s[i:after]
		i = after
	}

	// Tag: one or more word characters.
	j = i
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !isWordChar(r) {
			break
		}
		j += size
	}
	if j == i {
		return Line{}, false
	}
	tag := s[i:j]
	i = j

	// Value: either nothing, or a whitespace run followed by the rest.
	if i == len(s) {
		return Line{Level: level, Xref: xref, Tag: tag}, true
	}
	j = skipSpace(s, i)
	if j == i {
		// Non-whitespace glued onto the tag.
		return Line{}, false
	}
	return Line{Level: level, Xref: xref, Tag: tag, Value: s[j:]}, true
}

// Render reassembles the line around a substituted value.
//
// The value separator is appended only when the value is non-empty, so
// empty-valued tags round-trip without trailing whitespace.
func (l Line) Render(value string) string {
	var b strings.Builder
	b.Grow(len(l.Level) + 1 + len(l.Xref) + len(l.Tag) + 1 + len(value))
	b.WriteString(l.Level)
	b.WriteByte(' ')
	b.WriteString(l.Xref)
	b.WriteString(l.Tag)
	if value != "" {
		b.WriteByte(' ')
		b.WriteString(value)
	}
	return b.String()
}

// skipSpace returns the index of the first non-whitespace rune at or after i.
func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			return i
		}
		i += size
	}
	return i
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
