package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gedtools/gedscrub/internal/anonymizer"
)

// Scenario defines one anonymization conformance case: a document as inline
// lines plus the configuration it runs under.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// KeepDates and KeepPlaces mirror the engine's configuration switches.
	KeepDates  bool `yaml:"keep_dates,omitempty"`
	KeepPlaces bool `yaml:"keep_places,omitempty"`

	// Rules optionally extends the tag policy table, inline.
	Rules *anonymizer.RuleSet `yaml:"rules,omitempty"`

	// Input is the document, one entry per line. Empty entries are blank
	// lines and must survive to the output.
	Input []string `yaml:"input"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected to catch typos like "inputs:" vs "input:".
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Input) == 0 {
		return fmt.Errorf("input list is required and must be non-empty")
	}
	return nil
}
