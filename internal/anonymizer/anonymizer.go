package anonymizer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gedtools/gedscrub/internal/gedcom"
)

// diagnosticWindow is how many leading lines get a malformed-line warning.
// A malformed line near the top usually means a header or encoding problem;
// deeper in the file it is almost always an intentional continuation.
const diagnosticWindow = 5

// previewLimit caps the length of line previews in diagnostics.
const previewLimit = 50

// Options configures one document-processing run. Immutable for the run.
type Options struct {
	// KeepDates passes DATE values through unchanged.
	KeepDates bool

	// KeepPlaces passes PLAC values through unchanged and leaves the
	// place identity map empty.
	KeepPlaces bool

	// Rules optionally extends the tag policy table. See RuleSet.
	Rules *RuleSet

	// Logger receives malformed-line diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Summary reports what a run touched. Place count is zero when KeepPlaces
// was set, since the map is never populated.
type Summary struct {
	UniqueNames  int `json:"unique_names"`
	UniquePlaces int `json:"unique_places"`
	Lines        int `json:"lines"`
}

// Anonymizer rewrites one document's lines. It owns the identity maps, so
// it must see lines in document order; placeholder numbering is
// first-seen-gets-lowest-number. Not safe for concurrent use; create one
// instance per document.
type Anonymizer struct {
	opts     Options
	log      *slog.Logger
	policies map[string]policyFunc

	names        map[string]string
	places       map[string]string
	nameCounter  int
	placeCounter int
	lines        int
}

// New creates an Anonymizer with empty identity maps.
func New(opts Options) *Anonymizer {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Anonymizer{
		opts:     opts,
		log:      log,
		policies: buildPolicies(opts.Rules),
		names:    make(map[string]string),
		places:   make(map[string]string),
	}
}

// AnonymizeLine transforms one raw line. index is the 0-based position in
// the document, counting blank lines; it drives diagnostics only.
//
// Blank and whitespace-only lines return unchanged with no decomposition
// attempted. Lines that fail the structural grammar also return unchanged,
// with a warning when they fall inside the diagnostic window.
func (a *Anonymizer) AnonymizeLine(raw string, index int) string {
	a.lines++

	if strings.TrimSpace(raw) == "" {
		return raw
	}

	line, ok := gedcom.Parse(raw)
	if !ok {
		if index < diagnosticWindow {
			a.log.Warn("line doesn't match GEDCOM format",
				"line", index+1,
				"preview", preview(raw))
		}
		return raw
	}

	pol, found := a.policies[line.Tag]
	if !found {
		return line.Render(line.Value)
	}
	return line.Render(pol(a, line))
}

// Process streams a whole document from r to w, one newline-terminated
// output line per input line, in order. Trailing carriage returns are
// stripped, matching the line endings the rest of the pipeline emits.
func (a *Anonymizer) Process(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	bw := bufio.NewWriter(w)
	index := 0
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		if _, err := bw.WriteString(a.AnonymizeLine(text, index)); err != nil {
			return fmt.Errorf("writing line %d: %w", index+1, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing line %d: %w", index+1, err)
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading line %d: %w", index+1, err)
	}
	return bw.Flush()
}

// Summary returns the run's counters.
func (a *Anonymizer) Summary() Summary {
	return Summary{
		UniqueNames:  len(a.names),
		UniquePlaces: len(a.places),
		Lines:        a.lines,
	}
}

// anonymizeName resolves a name through the identity map, assigning the next
// placeholder on first sight.
func (a *Anonymizer) anonymizeName(name string) string {
	if placeholder, ok := a.names[name]; ok {
		return placeholder
	}
	a.nameCounter++
	placeholder := fmt.Sprintf("Person %d", a.nameCounter)
	a.names[name] = placeholder
	return placeholder
}

// anonymizePlace resolves a place through the identity map.
func (a *Anonymizer) anonymizePlace(place string) string {
	if placeholder, ok := a.places[place]; ok {
		return placeholder
	}
	a.placeCounter++
	placeholder := fmt.Sprintf("Place %d", a.placeCounter)
	a.places[place] = placeholder
	return placeholder
}

// preview truncates a line for diagnostics.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit])
}
