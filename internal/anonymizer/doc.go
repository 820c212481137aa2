// Package anonymizer rewrites GEDCOM lines to remove personal data while
// preserving structure.
//
// The engine is deliberately single-threaded: placeholder numbering is
// first-seen-wins, so the identity maps must observe lines in document order.
// One Anonymizer instance owns all mutable state for one document; construct
// a fresh instance per document and discard it afterwards. Instances are
// independent, so concurrent documents each get their own Anonymizer.
//
// What gets anonymized:
//   - NAME values via the name identity map ("Person 1", "Person 2", ...)
//   - PLAC values via the place identity map ("Place 1", ...) unless kept
//   - DATE values via shape-preserving normalization unless kept
//   - free text (NOTE, TEXT, CONT, CONC) and name parts, address fields,
//     contact fields, and level-1 TITL, replaced with fixed literals
//
// Everything else - levels, xrefs, record tags, linkage - passes through
// verbatim, as do lines that fail the structural grammar. Output line count
// always equals input line count.
//
// This is a best-effort redaction aid for bug reporting, not a privacy
// guarantee; output should be reviewed before sharing.
package anonymizer
