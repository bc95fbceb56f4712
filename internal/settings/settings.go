// Package settings loads checker configuration from
// .modelcheck/settings.yaml in a working directory.
//
// All of it is optional: a missing file yields nil settings, and every
// accessor is safe on a nil receiver, so callers never branch on presence.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the root of .modelcheck/settings.yaml.
type Settings struct {
	Rules   Rules   `yaml:"rules"`
	Checker Checker `yaml:"checker"`
}

// Rules configures the rule source and which rule groups to suppress.
type Rules struct {
	// Source is a file path or http(s) URL for the rule table.
	Source string `yaml:"source"`
	// Disable lists rule numbers to skip. Entries may be literal IDs
	// ("3") or glob patterns ("2*").
	Disable []string `yaml:"disable,omitempty"`
}

// Checker tunes evaluation behavior.
type Checker struct {
	// Strict propagates predicate evaluation errors instead of recording
	// them and treating the condition as not met.
	Strict bool `yaml:"strict,omitempty"`
	// Fuzzy switches "is like" to edit-distance matching.
	Fuzzy bool `yaml:"fuzzy,omitempty"`
	// FuzzyThreshold overrides the similarity threshold (0 = default).
	FuzzyThreshold float64 `yaml:"fuzzy_threshold,omitempty"`
}

// settingsPath returns <root>/.modelcheck/settings.yaml.
func settingsPath(root string) string {
	return filepath.Join(root, ".modelcheck", "settings.yaml")
}

// Load reads settings relative to root.
// Returns nil (not an error) if the file does not exist.
func Load(root string) (*Settings, error) {
	path := settingsPath(root)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// Save writes settings to <root>/.modelcheck/settings.yaml, creating the
// directory as needed.
func Save(root string, s *Settings) error {
	dir := filepath.Dir(settingsPath(root))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(settingsPath(root), data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// IsDisabled reports whether ruleID matches any disable entry.
// Safe to call on a nil *Settings receiver.
func (s *Settings) IsDisabled(ruleID string) bool {
	if s == nil {
		return false
	}
	for _, pattern := range s.Rules.Disable {
		if pattern == ruleID {
			return true
		}
		if matched, _ := filepath.Match(pattern, ruleID); matched {
			return true
		}
	}
	return false
}

// RuleSource returns the configured rule source, or "" when unset.
// Safe on a nil receiver.
func (s *Settings) RuleSource() string {
	if s == nil {
		return ""
	}
	return s.Rules.Source
}
