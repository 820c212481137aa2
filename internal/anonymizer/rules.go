package anonymizer

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleSet extends the tag policy table from a YAML file, so a site can
// scrub vendor extension tags (or keep a tag for debugging) without a code
// change:
//
//	redact_text:  [SNOTE]        # treated like NOTE/TEXT
//	redact_value: [OCCU, RELI]   # treated like GIVN/ADDR
//	preserve:     [TITL]         # forced verbatim pass-through
//
// Preserve wins when a tag appears in more than one list. The built-in
// NAME, PLAC, and DATE policies carry run configuration and identity state,
// so they may only be overridden through preserve.
type RuleSet struct {
	RedactText  []string `yaml:"redact_text,omitempty"`
	RedactValue []string `yaml:"redact_value,omitempty"`
	Preserve    []string `yaml:"preserve,omitempty"`
}

// builtinPolicies are the tags whose behavior is configuration-driven and
// therefore closed to redact-list overrides.
var builtinPolicies = map[string]bool{"NAME": true, "PLAC": true, "DATE": true}

// LoadRules reads and validates a rule file. Unknown YAML keys are rejected
// and tags are upper-cased before use.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	rules, err := parseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

func parseRules(data []byte) (*RuleSet, error) {
	var rules RuleSet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return nil, err
	}

	normalize := func(tags []string, allowBuiltin bool) error {
		for i, tag := range tags {
			tag = strings.ToUpper(strings.TrimSpace(tag))
			if tag == "" {
				return fmt.Errorf("empty tag in rule list")
			}
			if !allowBuiltin && builtinPolicies[tag] {
				return fmt.Errorf("tag %s has a built-in policy; use preserve to override it", tag)
			}
			tags[i] = tag
		}
		return nil
	}
	if err := normalize(rules.RedactText, false); err != nil {
		return nil, err
	}
	if err := normalize(rules.RedactValue, false); err != nil {
		return nil, err
	}
	if err := normalize(rules.Preserve, true); err != nil {
		return nil, err
	}
	return &rules, nil
}
