// Package report turns evaluation results into annotations for the hosting
// automation runtime and into standalone artifacts (YAML report, markdown
// summary, console output).
//
// The automation runtime itself is an external collaborator; this package
// specifies only the interface the core needs from it.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"modelcheck/internal/check"
	"modelcheck/internal/node"
	"modelcheck/internal/ruleset"
)

// Annotation is one attach call against the automation context: a category
// label, the addressable object identifiers it applies to, a message, and
// (for failures) a severity.
type Annotation struct {
	Category  string
	ObjectIDs []string
	Message   string
	Severity  ruleset.Severity
	Passed    bool
}

// Annotations maps one rule's partition to its attach calls. Passing
// objects annotate under "Rule <id> Success" at info level; failing
// objects under "Rule <id> Results" at the rule's severity. Objects
// without an identifier are not addressable and are left out.
func Annotations(res check.RuleResult) []Annotation {
	var out []Annotation
	if ids := objectIDs(res.Passed); len(ids) > 0 {
		out = append(out, Annotation{
			Category:  fmt.Sprintf("Rule %s Success", res.RuleID),
			ObjectIDs: ids,
			Message:   res.Message + " - Passed",
			Passed:    true,
		})
	}
	if ids := objectIDs(res.Failed); len(ids) > 0 {
		out = append(out, Annotation{
			Category:  fmt.Sprintf("Rule %s Results", res.RuleID),
			ObjectIDs: ids,
			Message:   res.Message + " - Failed",
			Severity:  res.Severity,
		})
	}
	return out
}

// objectIDs collects the non-empty identifiers from objs.
func objectIDs(objs []*node.Object) []string {
	var ids []string
	for _, obj := range objs {
		if obj.ID != "" {
			ids = append(ids, obj.ID)
		}
	}
	return ids
}

// ---------------------------------------------------------------------------
// Automation context
// ---------------------------------------------------------------------------

// Context is the surface this core needs from the hosting automation
// runtime: attach annotations to objects, record the run outcome, and
// restore the triggering model view.
type Context interface {
	AttachInfo(category string, objectIDs []string, message string) error
	AttachResult(category string, objectIDs []string, message string, severity ruleset.Severity) error
	MarkRunSuccess(message string) error
	MarkRunFailed(message string) error
	SetContextView() error
}

// Publish attaches every annotation from the run to ctx, marks the run
// failed when any rule failed objects at error severity (warnings alone do
// not fail a run), and resets the context view.
func Publish(ctx Context, run *check.RunResult) error {
	for _, res := range run.Results {
		for _, ann := range Annotations(res) {
			var err error
			if ann.Passed {
				err = ctx.AttachInfo(ann.Category, ann.ObjectIDs, ann.Message)
			} else {
				err = ctx.AttachResult(ann.Category, ann.ObjectIDs, ann.Message, ann.Severity)
			}
			if err != nil {
				return fmt.Errorf("attach rule %s: %w", res.RuleID, err)
			}
		}
	}

	if n := run.ErrorFailures(); n > 0 {
		if err := ctx.MarkRunFailed(fmt.Sprintf("%d rule(s) failed at error severity", n)); err != nil {
			return err
		}
	} else {
		if err := ctx.MarkRunSuccess("all rules passed or warned"); err != nil {
			return err
		}
	}
	return ctx.SetContextView()
}

// ---------------------------------------------------------------------------
// Run summary
// ---------------------------------------------------------------------------

// Summary identifies one evaluation pass and its headline counts.
type Summary struct {
	RunID     string `yaml:"run_id"`
	StartedAt string `yaml:"started_at"`
	Duration  string `yaml:"duration"`
	Objects   int    `yaml:"objects"`
	Rules     int    `yaml:"rules"`
	Skipped   int    `yaml:"skipped,omitempty"`
	Passed    int    `yaml:"passed"`
	Failed    int    `yaml:"failed"`
}

// NewSummary assembles a Summary for a finished run with a fresh run ID.
func NewSummary(objects int, run *check.RunResult, started time.Time) Summary {
	s := Summary{
		RunID:     uuid.NewString(),
		StartedAt: started.UTC().Format(time.RFC3339),
		Duration:  time.Since(started).Round(time.Millisecond).String(),
		Objects:   objects,
		Rules:     len(run.Results),
		Skipped:   len(run.Skipped),
	}
	for _, res := range run.Results {
		s.Passed += len(res.Passed)
		s.Failed += len(res.Failed)
	}
	return s
}
