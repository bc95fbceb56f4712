package report

// artifact.go — the check_report.yaml artifact.
//
// A Report is the persisted record of one evaluation pass. Field order
// matches the desired YAML output order; yaml.v3 respects struct field
// order, and all identifier lists are sorted so repeated runs over the
// same inputs produce identical artifacts.

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"modelcheck/internal/check"
)

// Report is the top-level artifact written to check_report.yaml.
type Report struct {
	Version int           `yaml:"version"`
	Run     Summary       `yaml:"run"`
	Rules   []RuleReport  `yaml:"rules,omitempty"`
	Skipped []SkippedRule `yaml:"skipped,omitempty"`
}

// RuleReport records one rule's outcome by object identifier.
type RuleReport struct {
	ID         string   `yaml:"id"`
	Message    string   `yaml:"message"`
	Severity   string   `yaml:"severity"`
	Candidates int      `yaml:"candidates"`
	Passed     []string `yaml:"passed,omitempty"`
	Failed     []string `yaml:"failed,omitempty"`
	Issues     []string `yaml:"issues,omitempty"`
}

// SkippedRule mirrors check.SkippedRule in the artifact.
type SkippedRule struct {
	ID     string `yaml:"id"`
	Reason string `yaml:"reason"`
}

// Build assembles a Report from a finished run. objects is the size of the
// flattened collection the rules were evaluated over.
func Build(objects int, run *check.RunResult, started time.Time) *Report {
	rep := &Report{
		Version: 1,
		Run:     NewSummary(objects, run, started),
	}
	for _, res := range run.Results {
		rr := RuleReport{
			ID:         res.RuleID,
			Message:    res.Message,
			Severity:   res.Severity.String(),
			Candidates: res.Candidates,
			Passed:     sortedIDs(objectIDs(res.Passed)),
			Failed:     sortedIDs(objectIDs(res.Failed)),
		}
		for _, issue := range res.Issues {
			rr.Issues = append(rr.Issues, fmt.Sprintf("%s %s: %v", issue.ObjectID, issue.Property, issue.Err))
		}
		sort.Strings(rr.Issues)
		rep.Rules = append(rep.Rules, rr)
	}
	for _, sk := range run.Skipped {
		rep.Skipped = append(rep.Skipped, SkippedRule{ID: sk.RuleID, Reason: sk.Reason})
	}
	return rep
}

func sortedIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

// Write marshals the report to YAML and writes it to path.
func Write(rep *Report, path string) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read reads and unmarshals a report artifact.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &rep, nil
}
