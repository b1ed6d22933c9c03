package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the top-level shape of a rule-definition YAML document:
// a list of rules plus whatever opaque metadata the trading partner
// chose to annotate the file with.
type file struct {
	Rules []Rule                 `yaml:"rules"`
	Extra map[string]interface{} `yaml:",inline"`
}

// Load reads a YAML rule-definition file from path and decodes it into
// Rules, defaulting Enabled to true when the document omits the field
// (yaml.v3 leaves Go zero values in place for missing keys, and a rule
// with no explicit "enabled: false" is meant to run).
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: reading %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses YAML-encoded rule definitions from data. A bare list of
// rules and a document with a top-level "rules:" key are both accepted.
func Decode(data []byte) ([]Rule, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err == nil && len(f.Rules) > 0 {
		return normalize(f.Rules), nil
	}

	var bare []Rule
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("rules: decoding YAML: %w", err)
	}
	return normalize(bare), nil
}

func normalize(rs []Rule) []Rule {
	out := make([]Rule, len(rs))
	for i, r := range rs {
		if r.SeverityName == "" {
			r.SeverityName = "error"
		}
		out[i] = r
	}
	return out
}
