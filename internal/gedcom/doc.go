// Package gedcom provides structural decomposition of GEDCOM lines.
//
// This package contains the line grammar only. It knows nothing about
// anonymization policy; internal/anonymizer imports gedcom, gedcom imports
// nothing internal. This keeps the decomposer a pure, stateless leaf.
//
// A GEDCOM line has the shape:
//
//	<level> <xref>? <tag> <value>?
//
// where level is a run of digits, xref is an @-bracketed identifier followed
// by whitespace, tag is a run of word characters, and the value is whatever
// remains after the tag's separating whitespace (possibly empty).
//
// Lines that do not match this shape are not errors: Parse reports ok=false
// and callers pass the raw text through unchanged, so output line count
// always equals input line count.
package gedcom
