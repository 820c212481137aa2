// Package harness provides fixture-driven conformance testing for the
// anonymization engine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	keep_dates: false
//	keep_places: false
//	rules:
//	  redact_value: [OCCU]
//	input:
//	  - "0 @I1@ INDI"
//	  - "1 NAME John /Smith/"
//
// Each scenario runs against a fresh Anonymizer, so identity-map numbering
// always starts at "Person 1" and output is reproducible across runs.
//
// # Golden Files
//
// RunWithGolden compares a scenario's full output against
// testdata/golden/{name}.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected anonymization output;
// review diffs carefully when policy behavior changes.
package harness
