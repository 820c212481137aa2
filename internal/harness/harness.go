package harness

import (
	"io"
	"log/slog"

	"github.com/gedtools/gedscrub/internal/anonymizer"
)

// Result captures one scenario execution.
type Result struct {
	// Output holds the transformed lines, one entry per input line.
	Output []string

	// Summary is the engine's run summary (unique names/places, lines).
	Summary anonymizer.Summary
}

// Run executes a scenario against a fresh Anonymizer.
//
// Each run gets its own engine instance, so placeholder numbering restarts
// at 1 and scenarios never interfere with each other. Diagnostics are
// suppressed; malformed-line behavior is observable through the output
// itself (pass-through).
func Run(scenario *Scenario) *Result {
	eng := anonymizer.New(anonymizer.Options{
		KeepDates:  scenario.KeepDates,
		KeepPlaces: scenario.KeepPlaces,
		Rules:      scenario.Rules,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	output := make([]string, len(scenario.Input))
	for i, line := range scenario.Input {
		output[i] = eng.AnonymizeLine(line, i)
	}

	return &Result{
		Output:  output,
		Summary: eng.Summary(),
	}
}
